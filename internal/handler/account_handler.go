package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/schoolops-api/internal/models"
	"github.com/noah-isme/schoolops-api/pkg/response"
)

type accountReader interface {
	List(ctx context.Context, filter models.AccountFilter) ([]models.Account, *models.Pagination, error)
	Get(ctx context.Context, id int64) (*models.AccountDetail, error)
	Reconcile(ctx context.Context, id int64) (*models.Reconciliation, error)
	Statement(ctx context.Context, id int64, format string) (*models.Statement, error)
}

type transactionApplier interface {
	ApplyTransaction(ctx context.Context, accountID int64, req models.ApplyTransactionRequest) (*models.Transaction, error)
}

// AccountHandler exposes account balances, history and money movement.
type AccountHandler struct {
	accounts accountReader
	ledger   transactionApplier
}

// NewAccountHandler constructs AccountHandler.
func NewAccountHandler(accounts accountReader, ledger transactionApplier) *AccountHandler {
	return &AccountHandler{accounts: accounts, ledger: ledger}
}

// List godoc
// @Summary List accounts
// @Tags Accounts
// @Produce json
// @Param search query string false "Search by owner name"
// @Param ownerType query string false "STUDENT or TEACHER"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	filter := models.AccountFilter{
		Search:    strings.TrimSpace(c.Query("search")),
		OwnerType: models.OwnerType(strings.ToUpper(c.Query("ownerType"))),
	}
	filter.Page, filter.PageSize = pageOf(c)

	accounts, pagination, err := h.accounts.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, accounts, pagination)
}

// Get godoc
// @Summary Get account with its transactions
// @Tags Accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} response.Envelope
// @Router /accounts/{id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	detail, err := h.accounts.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Transactions godoc
// @Summary List account transactions in the order they were applied
// @Tags Accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} response.Envelope
// @Router /accounts/{id}/transactions [get]
func (h *AccountHandler) Transactions(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	detail, err := h.accounts.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail.Transactions, nil)
}

// ApplyTransaction godoc
// @Summary Apply a transaction to an account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param payload body models.ApplyTransactionRequest true "Transaction"
// @Success 201 {object} response.Envelope
// @Router /accounts/{id}/transactions [post]
func (h *AccountHandler) ApplyTransaction(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.ApplyTransactionRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	req.RecordedBy = recorderOf(c)

	txn, err := h.ledger.ApplyTransaction(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, txn)
}

// Reconcile godoc
// @Summary Compare the stored balance with the replayed history
// @Tags Accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} response.Envelope
// @Router /accounts/{id}/reconcile [get]
func (h *AccountHandler) Reconcile(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.accounts.Reconcile(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Statement godoc
// @Summary Download the account statement
// @Tags Accounts
// @Produce application/pdf
// @Produce text/csv
// @Param id path int true "Account ID"
// @Param format query string false "csv or pdf" default(pdf)
// @Success 200 {file} file
// @Router /accounts/{id}/statement [get]
func (h *AccountHandler) Statement(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	statement, err := h.accounts.Statement(c.Request.Context(), id, c.DefaultQuery("format", "pdf"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, statement.Filename, statement.ContentType, statement.Data)
}
