//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/signroom-backend/internal/adapter/blob/localfs"
	"github.com/heartmarshall/signroom-backend/internal/adapter/postgres"
	"github.com/heartmarshall/signroom-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/signroom-backend/internal/adapter/postgres/envelope"
	"github.com/heartmarshall/signroom-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/signroom-backend/internal/adapter/provider/template"
	"github.com/heartmarshall/signroom-backend/internal/app"
	authpkg "github.com/heartmarshall/signroom-backend/internal/auth"
	"github.com/heartmarshall/signroom-backend/internal/canvas"
	"github.com/heartmarshall/signroom-backend/internal/config"
	"github.com/heartmarshall/signroom-backend/internal/seal"
	envelopesvc "github.com/heartmarshall/signroom-backend/internal/service/envelope"
	"github.com/heartmarshall/signroom-backend/internal/service/signing"
	"github.com/heartmarshall/signroom-backend/internal/transport/middleware"
	"github.com/heartmarshall/signroom-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL         string
	TemplateURL string
	TemplatePDF []byte
	Client      *http.Client
	Pool        *pgxpool.Pool
	jwt         *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the application router backed by a real
// PostgreSQL container (shared via testhelper), a local blob store in a
// temp dir and a template host serving a generated PDF.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	templatePDF := buildTemplate(t)
	templates := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(templatePDF) //nolint:errcheck
	}))
	t.Cleanup(templates.Close)

	// The API origin is only known once the server listens, so the handler
	// is swapped in after start.
	var handler http.Handler
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
			MaxAge:         86400,
		},
		RateLimit: config.RateLimitConfig{PublicPerMinute: 1000, CompanyPerMinute: 1000},
		Signing: config.SigningConfig{
			AccessTokenBytes:  32,
			SealLease:         2 * time.Minute,
			MaxRequestBytes:   10 << 20,
			MaxSignatureBytes: 2 << 20,
			LegacyRenderWidth: 800,
			LinkBaseURL:       "https://sign.example.com",
		},
		Storage: config.StorageConfig{MaxTemplateSize: 10 << 20},
	}

	blobs, err := localfs.New(t.TempDir(), srv.URL)
	require.NoError(t, err)

	txm := postgres.NewTxManager(pool)
	envelopes := envelope.New(pool)
	events := audit.New(pool)

	signingSvc := signing.NewService(
		logger, envelopes, events, blobs,
		template.NewFetcher(logger, 10*time.Second, 10<<20),
		seal.NewSealer(logger, cfg.Signing.LegacyRenderWidth),
		txm,
		signing.Config{
			SealLease:         cfg.Signing.SealLease,
			MaxSignatureBytes: cfg.Signing.MaxSignatureBytes,
			VerifyBaseURL:     srv.URL,
		},
	)
	envelopeSvc := envelopesvc.NewService(logger, envelopes, events, blobs, txm, envelopesvc.Config{
		AccessTokenBytes: cfg.Signing.AccessTokenBytes,
		LinkBaseURL:      cfg.Signing.LinkBaseURL,
	})

	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)
	rl := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(rl.Stop)

	handler = app.NewRouter(cfg, logger, app.Handlers{
		Signing:   rest.NewSigningHandler(signingSvc, logger),
		Envelopes: rest.NewEnvelopeHandler(envelopeSvc, logger),
		Health: rest.NewHealthHandler("test-version", map[string]rest.Checker{
			"database": rest.CheckerFunc(pool.Ping),
			"storage":  blobs,
		}),
		Files: rest.NewFilesHandler(blobs.FS()),
	}, jwtMgr, rl)

	return &testServer{
		URL:         srv.URL,
		TemplatePDF: templatePDF,
		TemplateURL: templates.URL + "/lease.pdf",
		Client:      srv.Client(),
		Pool:        pool,
		jwt:         jwtMgr,
	}
}

// operatorToken mints a JWT for a fresh operator of company.
func (ts *testServer) operatorToken(t *testing.T, company string) string {
	t.Helper()
	token, err := ts.jwt.GenerateOperatorToken("op-"+company, company)
	require.NoError(t, err)
	return token
}

// do sends a JSON request and decodes the JSON response body.
func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "e2e-browser/1.0")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp.StatusCode, out
}

// uploadTemplate posts a raw PDF to the template endpoint.
func (ts *testServer) uploadTemplate(t *testing.T, token string, pdf []byte) (int, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/v1/envelopes/templates", bytes.NewReader(pdf))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

// call invokes a callable endpoint.
func (ts *testServer) call(t *testing.T, name string, data map[string]any) (int, map[string]any) {
	t.Helper()
	return ts.do(t, http.MethodPost, "/v1/callable/"+name, "", map[string]any{"data": data})
}

func callableCode(t *testing.T, body map[string]any) string {
	t.Helper()
	e, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %v", body)
	code, _ := e["code"].(string)
	return code
}

func buildTemplate(t *testing.T) []byte {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.AddPage()
	pdf.Text(72, 72, "Residential lease")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("build template: %v", err)
	}
	return buf.Bytes()
}

// drawnSignature returns a data URL of a signature drawn on a 300x100 pad.
func drawnSignature(t *testing.T) string {
	t.Helper()
	s, err := canvas.NewSession(300, 100)
	require.NoError(t, err)
	rect := canvas.ClientRect{Width: 300, Height: 100}
	s.Begin(canvas.PointerEvent{ClientX: 20, ClientY: 70, Rect: rect})
	s.Extend(canvas.PointerEvent{ClientX: 120, ClientY: 20, Rect: rect})
	s.Extend(canvas.PointerEvent{ClientX: 220, ClientY: 70, Rect: rect})
	s.End()
	png, err := s.ExportPNG()
	require.NoError(t, err)
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
