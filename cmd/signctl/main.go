// Command signctl drives a signing link from the terminal: it shows the
// envelope a link points at and submits field values with a signature
// replayed from a recorded stroke file.
//
// Usage:
//
//	signctl show --company acme --request req-1 --token <token>
//	signctl sign --company acme --request req-1 --token <token> \
//	    --signature sig=strokes.json --set name="Jane Doe" --set agree=true
//
// The API origin comes from --api or SIGNCTL_API_URL (.env is honoured).
//
// Exit codes: 0 = success, 1 = error, 2 = usage.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const userAgent = "signctl/1"

// assignments collects repeated key=value flags.
type assignments map[string]string

func (a assignments) String() string { return fmt.Sprint(map[string]string(a)) }

func (a assignments) Set(v string) error {
	k, val, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(k) == "" {
		return fmt.Errorf("expected id=value, got %q", v)
	}
	a[strings.TrimSpace(k)] = val
	return nil
}

func main() {
	_ = godotenv.Load() // optional

	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		var usage usageError
		if errors.As(err, &usage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "signctl:", err)
		os.Exit(1)
	}
}

type usageError string

func (e usageError) Error() string { return string(e) }

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return usageError("usage: signctl <show|sign> [flags]")
	}
	cmd, args := args[0], args[1:]

	fs := flag.NewFlagSet("signctl "+cmd, flag.ContinueOnError)
	api := fs.String("api", envOr("SIGNCTL_API_URL", "http://localhost:8080"), "API origin")
	timeout := fs.Duration("timeout", 30*time.Second, "request timeout")
	var ref linkRef
	fs.StringVar(&ref.CompanyID, "company", "", "company id")
	fs.StringVar(&ref.RequestID, "request", "", "request id")
	fs.StringVar(&ref.AccessToken, "token", "", "access token from the signing link")
	values := assignments{}
	signatures := assignments{}
	if cmd == "sign" {
		fs.Var(values, "set", "field value as id=value (repeatable)")
		fs.Var(signatures, "signature", "signature field as id=strokes.json (repeatable)")
	}
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}
	if ref.CompanyID == "" || ref.RequestID == "" || ref.AccessToken == "" {
		return usageError("--company, --request and --token are required")
	}

	client := newCallableClient(*api, *timeout)

	switch cmd {
	case "show":
		env, err := client.GetPublicEnvelope(ctx, ref)
		if err != nil {
			return err
		}
		printEnvelope(out, env)
		return nil
	case "sign":
		fieldValues, err := buildValues(values, signatures)
		if err != nil {
			return err
		}
		res, err := client.SubmitPublicEnvelope(ctx, submission{
			linkRef:     ref,
			FieldValues: fieldValues,
			AuditData:   auditData{UserAgent: userAgent, Timestamp: time.Now().UnixMilli()},
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "signed at %s\n", res.SignedAt.Format(time.RFC3339))
		return nil
	default:
		return usageError(fmt.Sprintf("unknown command %q", cmd))
	}
}

func buildValues(values, signatures assignments) (map[string]any, error) {
	out := make(map[string]any, len(values)+len(signatures))
	for id, v := range values {
		out[id] = v
	}
	for id, path := range signatures {
		sf, err := loadStrokes(path)
		if err != nil {
			return nil, err
		}
		png, err := sf.render()
		if err != nil {
			return nil, fmt.Errorf("signature %s: %w", id, err)
		}
		out[id] = pngDataURL(png)
	}
	return out, nil
}

func printEnvelope(w io.Writer, env *publicEnvelope) {
	fmt.Fprintf(w, "%s\n  recipient: %s <%s>\n  status:    %s\n  document:  %s\n",
		env.Title, env.RecipientName, env.RecipientEmail, env.Status, env.PDFURL)
	for _, f := range env.Fields {
		req := ""
		if f.Required {
			req = " (required)"
		}
		label := f.Label
		if label == "" {
			label = f.ID
		}
		fmt.Fprintf(w, "  - %-10s %s page %d%s\n", f.Type, label, f.PageNumber, req)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
