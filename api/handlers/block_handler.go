package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Luismorlan/ledger_in_go/full_node"
	"github.com/gin-gonic/gin"
)

// BlockHandler handles block-related API requests
type BlockHandler struct {
	node Node
}

// NewBlockHandler creates a new BlockHandler
func NewBlockHandler(node Node) *BlockHandler {
	return &BlockHandler{node: node}
}

// List returns every block, oldest first
// GET /api/v1/blocks
func (h *BlockHandler) List(c *gin.Context) {
	blocks := h.node.GetBlocks()
	c.JSON(http.StatusOK, gin.H{"height": len(blocks), "blocks": blocks})
}

// GetByIndex returns a block by its 0 based index
// GET /api/v1/blocks/:index
func (h *BlockHandler) GetByIndex(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index"})
		return
	}
	if index >= h.node.GetHeight() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Block not found"})
		return
	}
	block, err := h.node.GetBlock(index)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, block)
}

// GetLatest returns the latest block
// GET /api/v1/blocks/latest
func (h *BlockHandler) GetLatest(c *gin.Context) {
	height := h.node.GetHeight()
	if height == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No blocks found"})
		return
	}
	block, err := h.node.GetBlock(height - 1)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, block)
}

// Seal puts every pending transaction into a new block
// POST /api/v1/blocks/seal
func (h *BlockHandler) Seal(c *gin.Context) {
	block, err := h.node.SealBlock()
	if errors.Is(err, full_node.ErrEmptyPool) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, block)
}
