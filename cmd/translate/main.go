// Command translate converts a chat-completions request into the Kiro
// payload the relay would send upstream, without contacting any service.
//
// Usage:
//
//	translate [-model id] [-profile-arn arn] [request.json]
//
// The request is read from the named file or from stdin. The payload is
// written to stdout as indented JSON. Warnings about oversized prompts go
// to stderr.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rhuss/relay/pkg/debug"
	"github.com/rhuss/relay/pkg/observability"
	"github.com/rhuss/relay/pkg/translator"
	"github.com/rhuss/relay/pkg/translator/openaikiro"
)

func main() {
	model := flag.String("model", "", "model id (defaults to the request's model)")
	profileARN := flag.String("profile-arn", "", "profile ARN to embed in the payload")
	maxTokens := flag.Int("max-tokens", openaikiro.DefaultMaxTokens, "maxTokens used when the request sets none")
	flag.Parse()

	debug.Init("", "")

	if err := run(*model, *profileARN, *maxTokens, flag.Arg(0)); err != nil {
		slog.Error("translate failed", "error", err)
		os.Exit(1)
	}
}

func run(model, profileARN string, maxTokens int, path string) error {
	in := io.Reader(os.Stdin)
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	body, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading request: %w", err)
	}

	tr := openaikiro.New(openaikiro.Config{
		Sink:             &observability.WarningSink{},
		DefaultMaxTokens: maxTokens,
	})

	payload, err := tr.TranslateRequest(context.Background(), &translator.Request{
		Model:       model,
		Body:        body,
		Credentials: translator.Credentials{ProfileARN: profileARN},
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
