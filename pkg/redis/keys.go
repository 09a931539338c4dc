package redis

import "fmt"

// RateLimitIPKey 按来源 IP 限流的键名。下单接口不要求登录，只能按 IP 聚合。
func RateLimitIPKey(ip string) string {
	return fmt.Sprintf("backoffice:rate_limit:ip:%s", ip)
}
