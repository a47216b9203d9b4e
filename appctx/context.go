package appctx

import "context"

// ContextKey is the shared type for all context keys in this codebase.
// Keeping it in a tiny package avoids import cycles (config <-> zohoclient).
type ContextKey string

func (c ContextKey) String() string { return string(c) }

var (
	// ContextKeyOrganizationId overrides the client's default organization for one call.
	ContextKeyOrganizationId = ContextKey("OrganizationId")
	ContextKeyCorrelationId  = ContextKey("CorrelationId")
)

func GetString(ctx context.Context, key ContextKey) (string, bool) {
	v, ok := ctx.Value(key).(string)
	return v, ok && v != ""
}

func Set(ctx context.Context, key ContextKey, value any) context.Context {
	return context.WithValue(ctx, key, value)
}

func GetOrganizationId(ctx context.Context) (string, bool) {
	return GetString(ctx, ContextKeyOrganizationId)
}

func SetOrganizationId(ctx context.Context, orgId string) context.Context {
	return Set(ctx, ContextKeyOrganizationId, orgId)
}

func GetCorrelationId(ctx context.Context) (string, bool) {
	return GetString(ctx, ContextKeyCorrelationId)
}

func SetCorrelationId(ctx context.Context, correlationId string) context.Context {
	return Set(ctx, ContextKeyCorrelationId, correlationId)
}
