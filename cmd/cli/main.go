package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"lothub/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

type tokenData struct {
	Token string `json:"token"`
}

type authResponse struct {
	Token string `json:"token"`
}

type supplierListResponse struct {
	Items      []models.Supplier `json:"items"`
	NextCursor *int64            `json:"next_cursor"`
}

func main() {
	global := flag.NewFlagSet("lothub", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	tokenPath := global.String("token", defaultTokenPath(), "token file path")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	if len(args) > 1 {
		sub = args[1]
	}

	client := &http.Client{Timeout: 15 * time.Second}

	switch cmd {
	case "auth":
		handleAuth(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "suppliers":
		handleSuppliers(ctx, client, *baseURL, sub, args[2:])
	case "pages":
		handlePages(ctx, client, *baseURL, sub, args[2:])
	case "reviews":
		handleReviews(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "submissions":
		handleSubmissions(ctx, client, *baseURL, sub, args[2:])
	case "events":
		handleEvents(*baseURL, sub, args[2:])
	case "export":
		handleExport(ctx, client, *baseURL, sub, args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "login":
		fs := flag.NewFlagSet("auth login", flag.ExitOnError)
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *email == "" || *password == "" {
			log.Fatal("email and password are required")
		}

		payload := map[string]string{"email": *email, "password": *password}
		var resp authResponse
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/login", "", payload, &resp); err != nil {
			log.Fatalf("login failed: %v", err)
		}
		if err := saveToken(tokenPath, resp.Token); err != nil {
			log.Fatalf("save token: %v", err)
		}
		fmt.Println("✅ logged in")
	case "register":
		fs := flag.NewFlagSet("auth register", flag.ExitOnError)
		username := fs.String("username", "", "username")
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *username == "" || *email == "" || *password == "" {
			log.Fatal("username, email, and password are required")
		}

		payload := map[string]string{"username": *username, "email": *email, "password": *password}
		var resp authResponse
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/register", "", payload, &resp); err != nil {
			log.Fatalf("register failed: %v", err)
		}
		if err := saveToken(tokenPath, resp.Token); err != nil {
			log.Fatalf("save token: %v", err)
		}
		fmt.Println("✅ registered and logged in")
	case "logout":
		if err := clearToken(tokenPath); err != nil {
			log.Fatalf("logout failed: %v", err)
		}
		fmt.Println("✅ logged out")
	default:
		log.Fatal("usage: lothub auth <login|register|logout>")
	}
}

func handleSuppliers(ctx context.Context, client *http.Client, baseURL, sub string, args []string) {
	switch sub {
	case "list":
		fs := flag.NewFlagSet("suppliers list", flag.ExitOnError)
		search := fs.String("search", "", "search term")
		category := fs.String("category", "", "category filter")
		region := fs.String("region", "", "region filter")
		lotSize := fs.String("lot-size", "", "lot size filter")
		cursor := fs.Int64("cursor", 0, "resume after this supplier id")
		limit := fs.Int("limit", 12, "page size")
		_ = fs.Parse(args)

		u, err := url.Parse(baseURL + "/suppliers")
		if err != nil {
			log.Fatalf("invalid base url: %v", err)
		}
		qv := u.Query()
		if *search != "" {
			qv.Set("search", *search)
		}
		if *category != "" {
			qv.Set("category", *category)
		}
		if *region != "" {
			qv.Set("region", *region)
		}
		if *lotSize != "" {
			qv.Set("lot_size", *lotSize)
		}
		if *cursor > 0 {
			qv.Set("cursor", fmt.Sprintf("%d", *cursor))
		}
		qv.Set("limit", fmt.Sprintf("%d", *limit))
		u.RawQuery = qv.Encode()

		var resp supplierListResponse
		if err := doJSON(ctx, client, http.MethodGet, u.String(), "", nil, &resp); err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(resp)
	case "show":
		fs := flag.NewFlagSet("suppliers show", flag.ExitOnError)
		slug := fs.String("slug", "", "supplier slug")
		_ = fs.Parse(args)
		if *slug == "" {
			log.Fatal("supplier slug is required")
		}

		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/suppliers/"+url.PathEscape(*slug), "", nil, &resp); err != nil {
			log.Fatalf("show failed: %v", err)
		}
		printJSON(resp)
	case "filters":
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/meta/filters", "", nil, &resp); err != nil {
			log.Fatalf("filters failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: lothub suppliers <list|show|filters>")
	}
}

func handlePages(ctx context.Context, client *http.Client, baseURL, sub string, args []string) {
	switch sub {
	case "list":
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/pages", "", nil, &resp); err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(resp)
	case "show":
		fs := flag.NewFlagSet("pages show", flag.ExitOnError)
		slug := fs.String("slug", "", "page slug")
		_ = fs.Parse(args)
		if *slug == "" {
			log.Fatal("page slug is required")
		}

		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/pages/"+url.PathEscape(*slug), "", nil, &resp); err != nil {
			log.Fatalf("show failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: lothub pages <list|show>")
	}
}

func handleReviews(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "list":
		fs := flag.NewFlagSet("reviews list", flag.ExitOnError)
		slug := fs.String("slug", "", "supplier slug")
		_ = fs.Parse(args)
		if *slug == "" {
			log.Fatal("supplier slug is required")
		}

		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/suppliers/"+url.PathEscape(*slug)+"/reviews", "", nil, &resp); err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(resp)
	case "add":
		token := mustToken(tokenPath)
		fs := flag.NewFlagSet("reviews add", flag.ExitOnError)
		supplierID := fs.Int64("supplier-id", 0, "supplier id")
		rating := fs.Int("rating", 0, "overall rating 1-5")
		accuracy := fs.Int("accuracy", 0, "manifest accuracy 1-5 (0 to skip)")
		logistics := fs.Int("logistics", 0, "shipping and logistics 1-5 (0 to skip)")
		value := fs.Int("value", 0, "value for money 1-5 (0 to skip)")
		comm := fs.Int("communication", 0, "communication 1-5 (0 to skip)")
		text := fs.String("text", "", "review text")
		_ = fs.Parse(args)
		if *supplierID == 0 || *rating == 0 {
			log.Fatal("supplier-id and rating are required")
		}

		payload := map[string]any{
			"supplier_id":   *supplierID,
			"rating":        *rating,
			"accuracy":      optAspect(*accuracy),
			"logistics":     optAspect(*logistics),
			"value":         optAspect(*value),
			"communication": optAspect(*comm),
			"text":          *text,
		}
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/reviews", token, payload, &resp); err != nil {
			log.Fatalf("add failed: %v", err)
		}
		printJSON(resp)
	case "remove":
		token := mustToken(tokenPath)
		fs := flag.NewFlagSet("reviews remove", flag.ExitOnError)
		id := fs.String("id", "", "review id")
		_ = fs.Parse(args)
		if *id == "" {
			log.Fatal("review id is required")
		}

		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodDelete, baseURL+"/reviews/"+url.PathEscape(*id), token, nil, &resp); err != nil {
			log.Fatalf("remove failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: lothub reviews <list|add|remove>")
	}
}

func handleSubmissions(ctx context.Context, client *http.Client, baseURL, sub string, args []string) {
	switch sub {
	case "submit":
		fs := flag.NewFlagSet("submissions submit", flag.ExitOnError)
		name := fs.String("name", "", "supplier name")
		website := fs.String("website", "", "website URL")
		region := fs.String("region", "", "region slug")
		categories := fs.String("categories", "", "comma-separated category slugs")
		lotSizes := fs.String("lot-sizes", "", "comma-separated lot size slugs")
		description := fs.String("description", "", "short description")
		contact := fs.String("contact", "", "contact email")
		_ = fs.Parse(args)
		if *name == "" {
			log.Fatal("supplier name is required")
		}

		payload := map[string]any{
			"name":        *name,
			"website":     *website,
			"region":      *region,
			"categories":  splitCSV(*categories),
			"lot_sizes":   splitCSV(*lotSizes),
			"description": *description,
			"contact":     *contact,
		}
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/submissions", "", payload, &resp); err != nil {
			log.Fatalf("submit failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: lothub submissions submit")
	}
}

func handleEvents(baseURL, sub string, args []string) {
	switch sub {
	case "listen":
		fs := flag.NewFlagSet("events listen", flag.ExitOnError)
		addr := fs.String("addr", "127.0.0.1:7070", "TCP event stream address")
		pretty := fs.Bool("pretty", true, "pretty print JSON events")
		_ = fs.Parse(args)
		for {
			if err := runEventsTCP(*addr, *pretty); err != nil {
				log.Printf("[events] disconnected: %v", err)
			}
			time.Sleep(1 * time.Second)
		}
	case "subscribe":
		fs := flag.NewFlagSet("events subscribe", flag.ExitOnError)
		wsURL := fs.String("ws", "", "WebSocket URL (defaults to /ws on API host)")
		_ = fs.Parse(args)

		endpoint := *wsURL
		if endpoint == "" {
			var err error
			endpoint, err = websocketURL(baseURL, "/ws")
			if err != nil {
				log.Fatalf("ws url: %v", err)
			}
		}
		if err := runWebSocket(endpoint); err != nil {
			log.Fatalf("subscribe failed: %v", err)
		}
	default:
		log.Fatal("usage: lothub events <listen|subscribe>")
	}
}

func handleExport(ctx context.Context, client *http.Client, baseURL, sub string, args []string) {
	switch sub {
	case "json":
		fs := flag.NewFlagSet("export json", flag.ExitOnError)
		out := fs.String("out", "data/suppliers.json", "output JSON path")
		limit := fs.Int("limit", 500, "max suppliers to export")
		_ = fs.Parse(args)

		items, err := fetchSuppliers(ctx, client, baseURL, *limit)
		if err != nil {
			log.Fatalf("export json failed: %v", err)
		}
		if err := writeJSON(*out, items); err != nil {
			log.Fatalf("write json failed: %v", err)
		}
		log.Printf("✅ exported %d suppliers to %s", len(items), *out)
	default:
		log.Fatal("usage: lothub export json")
	}
}

func runEventsTCP(addr string, pretty bool) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	log.Printf("[events] connected to %s", addr)
	reader := bufio.NewScanner(conn)
	for reader.Scan() {
		line := reader.Bytes()
		if !pretty {
			fmt.Println(string(line))
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(line, &obj); err != nil {
			fmt.Println(string(line))
			continue
		}
		b, _ := json.MarshalIndent(obj, "", "  ")
		fmt.Println(string(b))
	}
	if err := reader.Err(); err != nil {
		return err
	}
	return os.ErrClosed
}

func runWebSocket(wsURL string) error {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Printf("[events] connected to %s", wsURL)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		fmt.Println(string(msg))
	}
}

// walks the cursor chain until limit suppliers are collected or the
// directory runs out
func fetchSuppliers(ctx context.Context, client *http.Client, baseURL string, limit int) ([]models.Supplier, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be > 0")
	}

	var out []models.Supplier
	var cursor *int64
	for len(out) < limit {
		pageSize := 50
		if remaining := limit - len(out); remaining < pageSize {
			pageSize = remaining
		}
		u, err := url.Parse(baseURL + "/suppliers")
		if err != nil {
			return nil, err
		}
		qv := u.Query()
		qv.Set("limit", fmt.Sprintf("%d", pageSize))
		if cursor != nil {
			qv.Set("cursor", fmt.Sprintf("%d", *cursor))
		}
		u.RawQuery = qv.Encode()

		var resp supplierListResponse
		if err := doJSON(ctx, client, http.MethodGet, u.String(), "", nil, &resp); err != nil {
			return nil, err
		}
		if len(resp.Items) == 0 {
			break
		}
		out = append(out, resp.Items...)
		if resp.NextCursor == nil {
			break
		}
		cursor = resp.NextCursor
	}

	return out, nil
}

func writeJSON(path string, items []models.Supplier) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func doJSON(ctx context.Context, client *http.Client, method, endpoint, token string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s failed: %s", method, endpoint, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return err
	}
	return nil
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("json: %v", err)
	}
	fmt.Println(string(b))
}

func optAspect(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.lothub-token.json"
	}
	return filepath.Join(home, ".lothub", "token.json")
}

func saveToken(path, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tokenData{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func readToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var td tokenData
	if err := json.Unmarshal(data, &td); err != nil {
		return "", err
	}
	return strings.TrimSpace(td.Token), nil
}

func mustToken(path string) string {
	token, err := readToken(path)
	if err != nil {
		log.Fatalf("token not found, please login: %v", err)
	}
	if token == "" {
		log.Fatal("token empty, please login")
	}
	return token
}

func clearToken(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}

func printUsage() {
	fmt.Println("lothub <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  auth login|register|logout")
	fmt.Println("  suppliers list|show|filters")
	fmt.Println("  pages list|show")
	fmt.Println("  reviews list|add|remove")
	fmt.Println("  submissions submit")
	fmt.Println("  events listen|subscribe")
	fmt.Println("  export json")
}
