package handlers

import (
	"net/http"
	"sort"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles account-related API requests
type AccountHandler struct {
	node Node
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(node Node) *AccountHandler {
	return &AccountHandler{node: node}
}

type accountResponse struct {
	ID     string            `json:"id"`
	Kind   model.AccountType `json:"kind"`
	Tokens model.Uint128     `json:"tokens"`
}

// List returns every account ordered by id
// GET /api/v1/accounts
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.node.GetAccounts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]accountResponse, 0, len(accounts))
	for id, acc := range accounts {
		out = append(out, accountResponse{ID: id, Kind: acc.Kind, Tokens: acc.Tokens})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, gin.H{"accounts": out})
}

// Get returns one account
// GET /api/v1/accounts/:id
func (h *AccountHandler) Get(c *gin.Context) {
	id := c.Param("id")
	acc, ok, err := h.node.GetAccount(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	c.JSON(http.StatusOK, accountResponse{ID: id, Kind: acc.Kind, Tokens: acc.Tokens})
}
