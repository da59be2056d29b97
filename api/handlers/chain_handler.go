package handlers

import (
	"net/http"

	"github.com/Luismorlan/ledger_in_go/utils"
	"github.com/gin-gonic/gin"
)

// ChainHandler handles chain-wide API requests
type ChainHandler struct {
	node Node
}

// NewChainHandler creates a new ChainHandler
func NewChainHandler(node Node) *ChainHandler {
	return &ChainHandler{node: node}
}

// Get returns the chain summary
// GET /api/v1/chain
func (h *ChainHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"height":    h.node.GetHeight(),
		"tail_hash": utils.HashToHex(h.node.GetTailHash()),
		"pending":   len(h.node.PendingTransactions()),
	})
}

// Validity audits the whole chain
// GET /api/v1/chain/validity
func (h *ChainHandler) Validity(c *gin.Context) {
	if err := h.node.CheckValidity(); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}
