package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/txledger/internal/app/service/transaction"
	"github.com/fatflowers/txledger/pkg/response"
)

// errorCode maps a ledger error to its envelope code; the HTTP status follows
// from the code.
func errorCode(err error) response.APIResponseCode {
	switch {
	case errors.Is(err, transaction.ErrNotFound):
		return response.APIResponseCodeNotFound
	case errors.Is(err, transaction.ErrValidation), errors.Is(err, transaction.ErrInvariantViolation):
		return response.APIResponseCodeBadRequest
	default:
		return response.APIResponseCodeError
	}
}

func writeError(c *gin.Context, err error) {
	code := errorCode(err)
	c.JSON(response.HTTPStatus(code), response.ErrorT[any](code, err.Error()))
}

func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
}

// @Summary      Process payment
// @Description  Initiates a SALE or REFUND, encrypts its secure token and applies a simulated processor response.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        request body transaction.ProcessPaymentRequest true "Payment request"
// @Success      200  {object}  handlers.RespPayment
// @Failure      400  {object}  handlers.RespError
// @Failure      500  {object}  handlers.RespError
// @Router       /api/v1/payments [post]
func ApiProcessPayment(mgr transaction.TransactionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req transaction.ProcessPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, err)
			return
		}
		res, err := mgr.ProcessPayment(c.Request.Context(), &req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Initiate transaction
// @Description  Creates a SALE or REFUND ledger record in Initiated status.
// @Tags         Transaction
// @Accept       json
// @Produce      json
// @Param        request body transaction.InitiateRequest true "Initiate request"
// @Success      200  {object}  handlers.RespTransaction
// @Failure      400  {object}  handlers.RespError
// @Failure      500  {object}  handlers.RespError
// @Router       /api/v1/transactions [post]
func ApiInitiateTransaction(mgr transaction.TransactionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req transaction.InitiateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, err)
			return
		}
		tx, err := mgr.Initiate(c.Request.Context(), &req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(tx))
	}
}

// @Summary      Apply processor response
// @Description  Moves a transaction to the status its processor response maps to and records the audit entry.
// @Tags         Transaction
// @Accept       json
// @Produce      json
// @Param        id path string true "Transaction ID"
// @Param        request body transaction.ApplyResponseRequest true "Processor response"
// @Success      200  {object}  handlers.RespApplyResponse
// @Failure      400  {object}  handlers.RespError
// @Failure      404  {object}  handlers.RespError
// @Failure      500  {object}  handlers.RespError
// @Router       /api/v1/transactions/{id}/response [post]
func ApiApplyResponse(mgr transaction.TransactionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req transaction.ApplyResponseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, err)
			return
		}
		req.TransactionID = c.Param("id")
		res, err := mgr.ApplyResponse(c.Request.Context(), &req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Void transaction
// @Description  Creates the derived {id}-VOID record for a Completed transaction and enqueues a deduplicated notification.
// @Tags         Transaction
// @Accept       json
// @Produce      json
// @Param        id path string true "Transaction ID"
// @Param        request body transaction.VoidRequest true "Void request"
// @Success      200  {object}  handlers.RespTransaction
// @Failure      400  {object}  handlers.RespError
// @Failure      404  {object}  handlers.RespError
// @Failure      500  {object}  handlers.RespError
// @Router       /api/v1/transactions/{id}/void [post]
func ApiVoidTransaction(mgr transaction.TransactionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req transaction.VoidRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, err)
			return
		}
		req.TransactionID = c.Param("id")
		derived, err := mgr.Void(c.Request.Context(), &req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(derived))
	}
}

// @Summary      Reverse transaction
// @Description  Reverses a Completed or Success SALE/REFUND; the original becomes a Refunded REVERSAL.
// @Tags         Transaction
// @Accept       json
// @Produce      json
// @Param        id path string true "Transaction ID"
// @Param        request body transaction.ReverseRequest true "Reversal request"
// @Success      200  {object}  handlers.RespReversal
// @Failure      400  {object}  handlers.RespError
// @Failure      404  {object}  handlers.RespError
// @Failure      500  {object}  handlers.RespError
// @Router       /api/v1/transactions/{id}/reversal [post]
func ApiReverseTransaction(mgr transaction.TransactionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req transaction.ReverseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, err)
			return
		}
		req.TransactionID = c.Param("id")
		res, err := mgr.Reverse(c.Request.Context(), &req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Get transaction
// @Tags         Transaction
// @Produce      json
// @Param        id path string true "Transaction ID"
// @Success      200  {object}  handlers.RespTransaction
// @Failure      404  {object}  handlers.RespError
// @Router       /api/v1/transactions/{id} [get]
func ApiGetTransaction(mgr transaction.TransactionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tx, err := mgr.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(tx))
	}
}

// @Summary      Audit trail
// @Description  Lists the audit entries of a transaction and of the records derived from it, oldest first.
// @Tags         Transaction
// @Produce      json
// @Param        id path string true "Transaction ID"
// @Success      200  {object}  handlers.RespAuditTrail
// @Failure      404  {object}  handlers.RespError
// @Router       /api/v1/transactions/{id}/audit [get]
func ApiAuditTrail(mgr transaction.TransactionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := mgr.AuditTrail(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(entries))
	}
}

func RegisterTransactionRoutes(r gin.IRouter, mgr transaction.TransactionManager) {
	r.POST("/payments", ApiProcessPayment(mgr))

	tx := r.Group("/transactions")
	tx.POST("", ApiInitiateTransaction(mgr))
	tx.GET("/:id", ApiGetTransaction(mgr))
	tx.GET("/:id/audit", ApiAuditTrail(mgr))
	tx.POST("/:id/response", ApiApplyResponse(mgr))
	tx.POST("/:id/void", ApiVoidTransaction(mgr))
	tx.POST("/:id/reversal", ApiReverseTransaction(mgr))
}
