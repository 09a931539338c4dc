package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Result 记录单次请求的 HTTP 结果，便于聚合统计。
type Result struct {
	Status int
	Body   string
	Err    error
}

func main() {
	baseURL := flag.String("base", "http://localhost:8080", "server base url")
	productID := flag.String("product", "SP001", "product id to order")
	quantity := flag.Int("quantity", 1, "quantity per order")

	// 下单压测参数：n 个顾客并发下单
	nOrders := flag.Int("orders", 200, "orders to place")
	concurrency := flag.Int("c", 50, "max concurrency")
	listOnly := flag.Bool("list-only", false, "only hammer the public product endpoint")
	flag.Parse()

	client := &http.Client{Timeout: 5 * time.Second}

	if *listOnly {
		fmt.Printf("start read test: product=%s n=%d concurrency=%d\n", *productID, *nOrders, *concurrency)
		results := runGet(client, fmt.Sprintf("%s/api/public/product/%s", *baseURL, *productID), *nOrders, *concurrency)
		printSummary("read", results)
		return
	}

	// 1) 下单压测：观察库存扣减与 429 限流分布
	fmt.Printf("start order test: product=%s orders=%d concurrency=%d\n", *productID, *nOrders, *concurrency)
	results := runPlaceOrder(client, *baseURL, *productID, *quantity, *nOrders, *concurrency)
	printSummary("order", results)

	// 2) 下单后读取公共商品详情，确认 sold/quantity 已变化
	resp, err := client.Get(fmt.Sprintf("%s/api/public/product/%s", *baseURL, *productID))
	if err != nil {
		fmt.Println("product check err:", err)
		return
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	fmt.Println("final product state:", string(b))
}

func runPlaceOrder(client *http.Client, baseURL, productID string, quantity, total, concurrency int) []Result {
	type Item struct {
		ProductID string `json:"product_id"`
		Quantity  int64  `json:"quantity"`
	}
	type Req struct {
		FullName string `json:"full_name"`
		Items    []Item `json:"items"`
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	results := make([]Result, total)

	for i := 0; i < total; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			req := Req{
				FullName: fmt.Sprintf("khach hang %d", idx+1),
				Items:    []Item{{ProductID: productID, Quantity: int64(quantity)}},
			}
			results[idx] = postOnce(client, fmt.Sprintf("%s/api/orders", baseURL), req)
		}(i)
	}

	wg.Wait()
	return results
}

func runGet(client *http.Client, url string, total, concurrency int) []Result {
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	results := make([]Result, total)

	for i := 0; i < total; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			resp, err := client.Get(url)
			if err != nil {
				results[idx] = Result{Err: err}
				return
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			results[idx] = Result{Status: resp.StatusCode, Body: string(body)}
		}(i)
	}

	wg.Wait()
	return results
}

func postOnce(client *http.Client, url string, req any) Result {
	b, _ := json.Marshal(req)
	httpReq, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return Result{Err: err}
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return Result{Status: resp.StatusCode, Body: string(body)}
}

// printSummary 聚合输出不同状态码分布。
func printSummary(name string, results []Result) {
	count := map[int]int{}
	errCount := 0
	for _, r := range results {
		if r.Err != nil {
			errCount++
			continue
		}
		count[r.Status]++
	}
	fmt.Printf("[%s] http status summary:\n", name)
	for _, code := range []int{200, 400, 404, 429, 500} {
		if count[code] > 0 {
			fmt.Printf("  %d -> %d\n", code, count[code])
		}
	}
	if errCount > 0 {
		fmt.Printf("  errors -> %d\n", errCount)
	}
}
