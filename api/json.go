package api

import (
	"encoding/json"
	"net/http"

	"github.com/iov-one/jointbank/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// JSONResp write content as JSON encoded response.
func JSONResp(w http.ResponseWriter, logger log.Logger, code int, content interface{}) {
	b, err := json.MarshalIndent(content, "", "\t")
	if err != nil {
		logger.Error("cannot JSON serialize response", "err", err)
		code = http.StatusInternalServerError
		b = []byte(`{"errors":["Internal Server Error"]}`)
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	_, _ = w.Write(b)
}

// JSONErr write single error as JSON encoded response.
func JSONErr(w http.ResponseWriter, logger log.Logger, code int, errText string) {
	resp := struct {
		Errors []string `json:"errors"`
	}{
		Errors: []string{errText},
	}
	JSONResp(w, logger, code, resp)
}

// writeError translates a ledger error into a response. Internal errors are
// logged and not exposed.
func writeError(w http.ResponseWriter, logger log.Logger, err error) {
	switch {
	case errors.ErrNotFound.Is(err):
		JSONErr(w, logger, http.StatusNotFound, err.Error())
	case errors.ErrInput.Is(err), errors.ErrEmpty.Is(err):
		JSONErr(w, logger, http.StatusBadRequest, err.Error())
	default:
		logger.Error("read query", "err", err)
		JSONErr(w, logger, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
