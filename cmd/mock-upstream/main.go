// Command mock-upstream runs a deterministic stand-in for the Kiro
// generateAssistantResponse API. It checks that incoming payloads follow
// the conversation rules Kiro enforces and rejects violations with the
// same 400 reply the real service sends, which makes it useful for
// exercising the relay without credentials.
//
// Configuration:
//
//	MOCK_PORT - Listen port (default: 9090)
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rhuss/relay/pkg/provider/kiro"
)

func main() {
	port := os.Getenv("MOCK_PORT")
	if port == "" {
		port = "9090"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+kiro.DefaultPath, handleGenerate)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	srv := &http.Server{Addr: ":" + port, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("mock upstream starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("mock upstream failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("mock upstream shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

// --- Handler ---

func handleGenerate(w http.ResponseWriter, r *http.Request) {
	var payload kiro.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		reject(w, "malformed JSON: "+err.Error())
		return
	}

	if problems := checkPayload(&payload); len(problems) > 0 {
		slog.Warn("rejecting payload", "problems", problems)
		reject(w, "Improperly formed request.")
		return
	}

	cur := payload.ConversationState.CurrentMessage.UserInputMessage
	text := replyText(&payload)
	slog.Info("answering",
		"model", cur.ModelID,
		"history", len(payload.ConversationState.History),
		"stream", wantsStream(r),
	)

	if wantsStream(r) {
		streamReply(w, text)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"conversationId": payload.ConversationState.ConversationID,
		"content":        text,
	})
}

func reject(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

func wantsStream(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "event-stream")
}

// checkPayload lists the conversation rules the payload breaks.
func checkPayload(p *kiro.Payload) []string {
	var problems []string
	state := p.ConversationState

	if state.ConversationID == "" {
		problems = append(problems, "missing conversationId")
	}
	cur := state.CurrentMessage.UserInputMessage
	if cur.ModelID == "" {
		problems = append(problems, "missing modelId")
	}
	if ctx := cur.UserInputMessageContext; ctx != nil {
		for _, tool := range ctx.Tools {
			if strings.TrimSpace(tool.ToolSpecification.Description) == "" {
				problems = append(problems, fmt.Sprintf("tool %q has empty description", tool.ToolSpecification.Name))
			}
		}
	}

	lastUser := false
	for i, h := range state.History {
		switch {
		case h.UserInputMessage != nil:
			if lastUser {
				problems = append(problems, fmt.Sprintf("history[%d]: consecutive user messages", i))
			}
			if h.UserInputMessage.UserInputMessageContext != nil {
				problems = append(problems, fmt.Sprintf("history[%d]: tool metadata outside current message", i))
			}
			lastUser = true
		case h.AssistantResponseMessage != nil:
			lastUser = false
		default:
			problems = append(problems, fmt.Sprintf("history[%d]: empty entry", i))
		}
	}
	if lastUser {
		problems = append(problems, "history ends with a user message")
	}
	return problems
}

// replyText picks a canned answer from the current message.
func replyText(p *kiro.Payload) string {
	cur := p.ConversationState.CurrentMessage.UserInputMessage
	if ctx := cur.UserInputMessageContext; ctx != nil && len(ctx.ToolResults) > 0 {
		return fmt.Sprintf("Received %d tool result(s).", len(ctx.ToolResults))
	}
	if strings.Contains(strings.ToLower(cur.Content), "count from 1 to 5") {
		return "1, 2, 3, 4, 5"
	}
	return "Hello from the mock upstream!"
}

// --- Streaming ---

func streamReply(w http.ResponseWriter, text string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	for _, word := range strings.Fields(text) {
		data, _ := json.Marshal(map[string]string{"content": word + " "})
		fmt.Fprintf(w, "event: assistantResponseEvent\ndata: %s\n\n", data)
		flusher.Flush()
		time.Sleep(10 * time.Millisecond)
	}
	fmt.Fprint(w, "event: messageStopEvent\ndata: {}\n\n")
	flusher.Flush()
}
