// Package main provides a debug action helper for Wision.
// It speaks the sink helper protocol (newline-delimited JSON over
// stdin/stdout) and logs every action to stderr instead of injecting
// desktop input, which makes it useful for trying out gesture bindings
// without moving the real pointer.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// Request represents one action from the engine.
type Request struct {
	Op     string `json:"op"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	Button string `json:"button,omitempty"`
	Count  int    `json:"count,omitempty"`
	Amount int    `json:"amount,omitempty"`
	Name   string `json:"name,omitempty"`
}

// Response represents the reply for one request.
type Response struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func main() {
	log.SetPrefix("wision-debug-sink: ")

	scanner := bufio.NewScanner(os.Stdin)
	encoder := json.NewEncoder(os.Stdout)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			writeResponse(encoder, Response{OK: false, Error: fmt.Sprintf("decode request: %v", err)})
			continue
		}

		describe(req)
		writeResponse(encoder, Response{OK: true})
	}

	if err := scanner.Err(); err != nil {
		log.Printf("stdin read failed: %v", err)
		os.Exit(1)
	}
}

// describe logs a human-readable line for the action.
func describe(req Request) {
	switch req.Op {
	case "pointer_move":
		log.Printf("pointer move to (%d, %d)", req.X, req.Y)
	case "pointer_click":
		log.Printf("%s click x%d", req.Button, req.Count)
	case "scroll":
		log.Printf("scroll %+d", req.Amount)
	case "key_combo":
		log.Printf("key combo %q", req.Name)
	case "window_op":
		log.Printf("window op %q", req.Name)
	default:
		log.Printf("unknown op %q", req.Op)
	}
}

func writeResponse(encoder *json.Encoder, resp Response) {
	if err := encoder.Encode(resp); err != nil {
		log.Printf("write response failed: %v", err)
		os.Exit(1)
	}
}
