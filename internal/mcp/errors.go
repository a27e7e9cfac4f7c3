// Package mcp implements the Model Context Protocol server for ShowMCP.
package mcp

import (
	"context"
	"errors"
	"fmt"

	serrors "github.com/showfolio/showmcp/internal/errors"
)

// Custom MCP error codes for ShowMCP.
const (
	// ErrCodeProjectNotFound indicates the project id is unknown.
	ErrCodeProjectNotFound = -32001

	// ErrCodeStoreUnavailable indicates the record store cannot be reached.
	ErrCodeStoreUnavailable = -32002

	// ErrCodeTimeout indicates the request timed out or was canceled.
	ErrCodeTimeout = -32003

	// Standard JSON-RPC error codes.
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternalError  = -32603
)

// MCPError is an MCP protocol error with code and message.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// NewInvalidParamsError creates an invalid-params error with a custom message.
func NewInvalidParamsError(msg string) *MCPError {
	return &MCPError{Code: ErrCodeInvalidParams, Message: msg}
}

// MapError converts internal errors to MCP protocol errors.
func MapError(err error) *MCPError {
	if err == nil {
		return nil
	}

	var ie *serrors.IndexError
	if errors.As(err, &ie) {
		return mapIndexError(ie)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request timed out."}
	case errors.Is(err, context.Canceled):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request was canceled."}
	default:
		return &MCPError{Code: ErrCodeInternalError, Message: "Internal server error."}
	}
}

func mapIndexError(ie *serrors.IndexError) *MCPError {
	message := ie.Message
	if ie.Suggestion != "" {
		message = fmt.Sprintf("%s %s", ie.Message, ie.Suggestion)
	}

	switch ie.Category {
	case serrors.CategoryStore:
		if ie.Code == serrors.ErrCodeProjectNotFound {
			return &MCPError{Code: ErrCodeProjectNotFound, Message: message}
		}
		return &MCPError{Code: ErrCodeInternalError, Message: message}
	case serrors.CategoryNetwork:
		return &MCPError{Code: ErrCodeStoreUnavailable, Message: message}
	case serrors.CategoryValidation:
		return &MCPError{Code: ErrCodeInvalidParams, Message: message}
	default:
		return &MCPError{Code: ErrCodeInternalError, Message: message}
	}
}
