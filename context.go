package goShield

import "context"

type clientIPContextKey struct{}
type userAgentContextKey struct{}
type deviceIDContextKey struct{}

// WithClientIP attaches the caller's IP address to ctx. The Guard uses it
// for rate-limit fallback keys, audit logging, and session consistency
// checks.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// WithUserAgent attaches the HTTP User-Agent string to ctx. Used by the
// session lifecycle to detect hijacked sessions.
func WithUserAgent(ctx context.Context, userAgent string) context.Context {
	return context.WithValue(ctx, userAgentContextKey{}, userAgent)
}

// WithDeviceID attaches the device correlation key to ctx. The rate gate
// prefers it over the network address so that limits follow the browser, not
// the NAT.
func WithDeviceID(ctx context.Context, deviceID CorrelationKey) context.Context {
	return context.WithValue(ctx, deviceIDContextKey{}, deviceID)
}

// DeviceIDFromContext returns the device correlation key attached by
// [WithDeviceID] or the device-identity middleware.
func DeviceIDFromContext(ctx context.Context) (CorrelationKey, bool) {
	if ctx == nil {
		return "", false
	}

	id, ok := ctx.Value(deviceIDContextKey{}).(CorrelationKey)
	return id, ok && id != ""
}

func clientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}

func userAgentFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	userAgent, _ := ctx.Value(userAgentContextKey{}).(string)
	return userAgent
}
