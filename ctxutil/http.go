package ctxutil

import (
	"context"
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	clientIPKey  = "client_ip"
	userAgentKey = "user_agent"
)

// SetClientInfo sets client ip and user agent to context.Context
func SetClientInfo(ctx context.Context, ip, userAgent string) context.Context {
	ctx = SetValue(ctx, clientIPKey, ip)
	return SetValue(ctx, userAgentKey, userAgent)
}

// GetClientIP gets client IP from context.Context
func GetClientIP(ctx context.Context) string {
	if ip, ok := GetValue(ctx, clientIPKey).(string); ok && ip != "" {
		return ip
	}
	if c, ok := GetGinContext(ctx); ok {
		return ClientIP(c)
	}
	return "unknown"
}

// GetUserAgent gets user agent from context.Context
func GetUserAgent(ctx context.Context) string {
	if ua, ok := GetValue(ctx, userAgentKey).(string); ok && ua != "" {
		return ua
	}
	if c, ok := GetGinContext(ctx); ok {
		if ua := c.GetHeader("User-Agent"); ua != "" {
			return ua
		}
	}
	return "unknown"
}

// ClientIP resolves the caller address, preferring the first public
// X-Forwarded-For hop
func ClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if ip != "" && !isPrivateIP(ip) {
			return ip
		}
	}
	if ip := c.GetHeader("X-Real-IP"); ip != "" && !isPrivateIP(ip) {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	if c.Request != nil {
		if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
			return host
		}
		return c.Request.RemoteAddr
	}
	return "unknown"
}

var privateRanges = func() []*net.IPNet {
	cidrs := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"127.0.0.0/8",
		"169.254.0.0/16",
		"::1/128",
		"fc00::/7",
	}
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		if _, n, err := net.ParseCIDR(cidr); err == nil {
			nets = append(nets, n)
		}
	}
	return nets
}()

// isPrivateIP checks if IP is private; unparsable input counts as private
func isPrivateIP(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return true
	}
	for _, n := range privateRanges {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
