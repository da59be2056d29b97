package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Luismorlan/ledger_in_go/full_node"
	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/gin-gonic/gin"
)

// TxHandler handles transaction-related API requests
type TxHandler struct {
	node Node
}

// NewTxHandler creates a new TxHandler
func NewTxHandler(node Node) *TxHandler {
	return &TxHandler{node: node}
}

// Pending returns the transactions waiting for a block
// GET /api/v1/transactions/pending
func (h *TxHandler) Pending(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"transactions": h.node.PendingTransactions()})
}

// Submit adds a transaction to the pool. A missing created_at is stamped
// with the current time.
// POST /api/v1/transactions
func (h *TxHandler) Submit(c *gin.Context) {
	var tx model.Transaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if tx.From == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing sender"})
		return
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}

	err := h.node.AddTransactionToPool(&tx)
	if errors.Is(err, full_node.ErrDuplicateTransaction) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"hash": tx.CalculateHash().String()})
}
