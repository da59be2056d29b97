package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Luismorlan/ledger_in_go/config"
	"github.com/Luismorlan/ledger_in_go/full_node"
	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*Router, *full_node.FullNode) {
	node, err := full_node.NewFullNode(config.AppConfig{
		STORE: config.StoreMemory,
		GENESIS: []config.GenesisAccount{
			{ID: "alice", TOKENS: "100000000"},
			{ID: "bob", TOKENS: "100000000"},
		},
	})
	require.NoError(t, err)
	return NewRouter(node), node
}

func do(r *Router, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

const transferBody = `{"from":"alice","nonce":"0","record":{"type":"transfer_tokens","data":{"to":"bob","amount":"25"}}}`

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestChainSummaryAndValidity(t *testing.T) {
	r, node := newTestRouter(t)
	w := do(r, http.MethodGet, "/api/v1/chain", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(1), body["height"])
	assert.Equal(t, node.GetTailHash().String(), body["tail_hash"])

	w = do(r, http.MethodGet, "/api/v1/chain/validity", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["valid"])
}

func TestSubmitAndSeal(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/transactions", transferBody)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Len(t, decode(t, w)["hash"], 64)

	w = do(r, http.MethodGet, "/api/v1/transactions/pending", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["transactions"], 1)

	w = do(r, http.MethodPost, "/api/v1/blocks/seal", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var block model.Block
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &block))
	assert.True(t, block.VerifyOwnHash())
	assert.Equal(t, 1, block.TransactionCount())

	w = do(r, http.MethodGet, "/api/v1/accounts/bob", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "100000025", decode(t, w)["tokens"])

	w = do(r, http.MethodPost, "/api/v1/blocks/seal", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSubmitDuplicate(t *testing.T) {
	r, _ := newTestRouter(t)
	body := `{"from":"alice","nonce":"0","created_at":"2024-01-01T00:00:00Z","record":{"type":"create_user_account","data":{"id":"carol"}}}`
	require.Equal(t, http.StatusAccepted, do(r, http.MethodPost, "/api/v1/transactions", body).Code)
	assert.Equal(t, http.StatusConflict, do(r, http.MethodPost, "/api/v1/transactions", body).Code)
}

func TestSubmitInvalid(t *testing.T) {
	r, _ := newTestRouter(t)
	bodies := []string{
		`not json`,
		`{"from":"alice","nonce":"0","record":{"type":"burn","data":{}}}`,
		`{"nonce":"0","record":{"type":"create_user_account","data":{"id":"x"}}}`,
		`{"from":"alice","nonce":"0","record":{"type":"transfer_tokens","data":{"to":"bob","amount":-1}}}`,
	}
	for _, b := range bodies {
		w := do(r, http.MethodPost, "/api/v1/transactions", b)
		assert.Equal(t, http.StatusBadRequest, w.Code, b)
		assert.NotEmpty(t, decode(t, w)["error"])
	}
}

func TestSealRejectedBlock(t *testing.T) {
	r, node := newTestRouter(t)
	tx := model.NewTransaction("alice", model.TransferTokens{To: "bob", Amount: model.NewUint128(500000000)}, model.NewUint128(0))
	require.NoError(t, node.AddTransactionToPool(tx))

	w := do(r, http.MethodPost, "/api/v1/blocks/seal", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decode(t, w)["error"], "48239084203")
	assert.Empty(t, node.PendingTransactions())
}

func TestBlocks(t *testing.T) {
	r, node := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/v1/blocks", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["blocks"], 1)

	w = do(r, http.MethodGet, "/api/v1/blocks/latest", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, node.GetTailHash().String(), decode(t, w)["hash"])

	w = do(r, http.MethodGet, "/api/v1/blocks/0", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode(t, w)["prev_hash"])

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/v1/blocks/7", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/v1/blocks/abc", "").Code)
}

func TestLatestBlockOnEmptyChain(t *testing.T) {
	node, err := full_node.NewFullNode(config.Default())
	require.NoError(t, err)
	r := NewRouter(node)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/v1/blocks/latest", "").Code)
}

func TestAccounts(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodGet, "/api/v1/accounts", "")
	require.Equal(t, http.StatusOK, w.Code)
	accounts := decode(t, w)["accounts"].([]interface{})
	require.Len(t, accounts, 2)
	assert.Equal(t, "alice", accounts[0].(map[string]interface{})["id"])

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/v1/accounts/mallory", "").Code)
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodOptions, "/api/v1/chain", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
