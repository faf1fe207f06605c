package api

import (
	"net/http"
	"strconv"

	"github.com/dekarrin/phpsyn/server/result"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// ParseRecordModel is the JSON rendering of one dao.ParseRecord.
type ParseRecordModel struct {
	ID           string `json:"id"`
	SourceHash   string `json:"sourceHash"`
	ByteLength   int    `json:"byteLength"`
	NodeCount    int    `json:"nodeCount,omitempty"`
	ElapsedMs    int64  `json:"elapsedMs"`
	Failed       bool   `json:"failed"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	Created      string `json:"created"`
}

// HistoryResponse is the JSON body returned by a successful /v1/history call.
type HistoryResponse struct {
	Records []ParseRecordModel `json:"records"`
	Offset  int                `json:"offset"`
	Limit   int                `json:"limit"`
}

// HTTPHistory returns a HandlerFunc that lists recently recorded parse
// attempts, newest first.
func (api API) HTTPHistory() http.HandlerFunc {
	return api.httpEndpoint(api.epHistory)
}

func (api API) epHistory(req *http.Request) result.Result {
	offset, err := intQueryParam(req, "offset", 0)
	if err != nil {
		return result.BadRequest("offset: " + err.Error())
	}
	limit, err := intQueryParam(req, "limit", defaultHistoryLimit)
	if err != nil {
		return result.BadRequest("limit: " + err.Error())
	}
	if limit <= 0 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}

	recs, err := api.Store.ParseRecords().GetPage(req.Context(), offset, limit)
	if err != nil {
		return result.InternalServerError("could not list parse history: %s", err.Error())
	}

	resp := HistoryResponse{Offset: offset, Limit: limit}
	for _, rec := range recs {
		resp.Records = append(resp.Records, ParseRecordModel{
			ID:           rec.ID.String(),
			SourceHash:   rec.SourceHash,
			ByteLength:   rec.ByteLength,
			NodeCount:    rec.NodeCount,
			ElapsedMs:    rec.Elapsed.Milliseconds(),
			Failed:       rec.Failed(),
			ErrorMessage: rec.ErrorMessage,
			Created:      rec.Created.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}

	return result.OK(resp, "%s listed %d history records at offset %d", remoteIP(req), len(resp.Records), offset)
}

func intQueryParam(req *http.Request, key string, def int) (int, error) {
	raw := req.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
