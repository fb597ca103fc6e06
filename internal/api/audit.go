package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"fundboard/internal/core"
	"fundboard/internal/log"
)

// AuditQuery narrows the audit listing. Zero values are omitted from the
// query string; in particular, an unselected user sends no `user` parameter.
type AuditQuery struct {
	StartDate string
	EndDate   string
	Page      int
	Limit     int
	UserID    int64
}

func (q AuditQuery) values() url.Values {
	v := url.Values{}
	if q.StartDate != "" {
		v.Set("startDate", q.StartDate)
	}
	if q.EndDate != "" {
		v.Set("endDate", q.EndDate)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.UserID > 0 {
		v.Set("user", strconv.FormatInt(q.UserID, 10))
	}
	return v
}

// LoadAudit lists audit entries, read-only from the client's side.
func (c *Client) LoadAudit(ctx context.Context, token string, query AuditQuery) ([]core.AuditLog, error) {
	var envelope listEnvelope[core.AuditLog]
	err := c.do(ctx, call{
		resource: "audit",
		action:   log.OpList,
		method:   http.MethodGet,
		path:     "/audit",
		token:    token,
		query:    query.values(),
		fallback: "Failed to load audit logs. Please try again.",
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return envelope.Data, nil
}
