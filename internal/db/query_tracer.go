package db

import (
	"context"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v5"
)

const maxQueryDescription = 512

type querySpanKey struct{}

// queryTracer records each catalogue query as a child span of the request
// span, when one exists.
type queryTracer struct{}

func newQueryTracer() *queryTracer {
	return &queryTracer{}
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	if sentry.SpanFromContext(ctx) == nil {
		return ctx
	}

	statement := compactSQL(data.SQL)
	span := sentry.StartSpan(ctx, "db.sql.query",
		sentry.WithDescription(statement),
		sentry.WithSpanOrigin(sentry.SpanOriginManual),
	)
	span.SetData("db.system", "postgresql")
	if verb := sqlVerb(statement); verb != "" {
		span.SetData("db.operation", verb)
	}
	if table := sqlTable(statement); table != "" {
		span.SetData("db.sql.table", table)
	}

	return context.WithValue(span.Context(), querySpanKey{}, span)
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	span, ok := ctx.Value(querySpanKey{}).(*sentry.Span)
	if !ok || span == nil {
		return
	}
	defer span.Finish()

	if data.Err != nil {
		span.Status = sentry.SpanStatusInternalError
		span.SetData("db.error", data.Err.Error())
		return
	}
	span.Status = sentry.SpanStatusOK
	span.SetData("db.rows", data.CommandTag.RowsAffected())
}

func compactSQL(sql string) string {
	compact := strings.Join(strings.Fields(sql), " ")
	if compact == "" {
		return "sql.query"
	}
	if len(compact) > maxQueryDescription {
		return compact[:maxQueryDescription]
	}
	return compact
}

func sqlVerb(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

// sqlTable returns the first table named after FROM.
func sqlTable(sql string) string {
	fields := strings.Fields(sql)
	for i, field := range fields {
		if strings.EqualFold(field, "from") && i+1 < len(fields) {
			return strings.Trim(fields[i+1], `"(),;`)
		}
	}
	return ""
}
