package goSession

import "context"

type contextKey struct{ name string }

var tenantIDKey = &contextKey{"tenant-id"}

// WithTenantID attaches a tenant namespace to the context. [Definition.Create]
// falls back to it when the attribute map carries no tenant.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

// TenantIDFromContext returns the tenant attached by [WithTenantID], or "".
func TenantIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(tenantIDKey).(string); ok {
		return v
	}
	return ""
}
