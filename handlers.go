package main

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

func (s *MCPServer) handleListTools() (*ListToolsResult, *Error) {
	return &ListToolsResult{
		Tools: []Tool{
			{
				Name:        "read_query",
				Description: "Execute a SELECT query on the database",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"query": {Type: "string", Description: "The SELECT SQL query to execute"},
					},
					Required: []string{"query"},
				},
			},
			{
				Name:        "write_query",
				Description: "Execute an INSERT, UPDATE, or DELETE query on the database",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"query": {Type: "string", Description: "The SQL modification query to execute"},
					},
					Required: []string{"query"},
				},
			},
			{
				Name:        "create_table",
				Description: "Create a new table in the database",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"query": {Type: "string", Description: "The CREATE TABLE statement"},
					},
					Required: []string{"query"},
				},
			},
			{
				Name:        "list_tables",
				Description: "List all tables in the database",
				InputSchema: InputSchema{
					Type:       "object",
					Properties: map[string]Property{},
					Required:   []string{},
				},
			},
			{
				Name:        "describe_table",
				Description: "Show column information for a specific table",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"table_name": {Type: "string", Description: "Name of the table to describe"},
					},
					Required: []string{"table_name"},
				},
			},
			{
				Name:        "append_insight",
				Description: "Add a business insight to the memo",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"insight": {Type: "string", Description: "Business insight discovered from data analysis"},
					},
					Required: []string{"insight"},
				},
			},
		},
	}, nil
}

func (s *MCPServer) handleCallTool(params json.RawMessage) (*CallToolResult, *Error) {
	var callParams CallToolParams
	if err := json.Unmarshal(params, &callParams); err != nil {
		return nil, &Error{
			Code:    InvalidParams,
			Message: "Invalid parameters",
			Data:    err.Error(),
		}
	}

	switch callParams.Name {
	case "read_query":
		return s.execReadQuery(callParams.Arguments)
	case "write_query":
		return s.execWriteQuery(callParams.Arguments)
	case "create_table":
		return s.execCreateTable(callParams.Arguments)
	case "list_tables":
		return s.execListTables()
	case "describe_table":
		return s.execDescribeTable(callParams.Arguments)
	case "append_insight":
		return s.execAppendInsight(callParams.Arguments)
	default:
		return nil, &Error{
			Code:    MethodNotFound,
			Message: fmt.Sprintf("Unknown tool: %s", callParams.Name),
		}
	}
}

func stringArg(args map[string]any, key string) (string, *Error) {
	value, ok := args[key].(string)
	if !ok || value == "" {
		return "", &Error{
			Code:    InvalidParams,
			Message: fmt.Sprintf("Missing or invalid '%s' parameter", key),
		}
	}
	return value, nil
}

func (s *MCPServer) execReadQuery(args map[string]any) (*CallToolResult, *Error) {
	query, argErr := stringArg(args, "query")
	if argErr != nil {
		return nil, argErr
	}
	if err := ValidateQuery(query, IntentRead); err != nil {
		return nil, &Error{Code: InvalidParams, Message: fmt.Sprintf("Query rejected: %v", err)}
	}

	ctx, cancel := context.WithTimeout(s.ctx, QueryTimeout)
	defer cancel()

	rows, err := s.gateway.Query(ctx, query)
	if err != nil {
		s.logger.Error("read_query failed", zap.Error(err))
		return nil, &Error{Code: InternalError, Message: fmt.Sprintf("Database error: %v", err)}
	}
	return jsonContent(rows)
}

func (s *MCPServer) execWriteQuery(args map[string]any) (*CallToolResult, *Error) {
	query, argErr := stringArg(args, "query")
	if argErr != nil {
		return nil, argErr
	}
	if err := ValidateQuery(query, IntentWrite); err != nil {
		return nil, &Error{Code: InvalidParams, Message: fmt.Sprintf("Query rejected: %v", err)}
	}

	ctx, cancel := context.WithTimeout(s.ctx, QueryTimeout)
	defer cancel()

	affected, err := s.gateway.Exec(ctx, query)
	if err != nil {
		s.logger.Error("write_query failed", zap.Error(err))
		return nil, &Error{Code: InternalError, Message: fmt.Sprintf("Database error: %v", err)}
	}

	return textContent(fmt.Sprintf("%d row(s) affected", affected)), nil
}

func (s *MCPServer) execCreateTable(args map[string]any) (*CallToolResult, *Error) {
	query, argErr := stringArg(args, "query")
	if argErr != nil {
		return nil, argErr
	}
	if err := ValidateQuery(query, IntentCreateTable); err != nil {
		return nil, &Error{Code: InvalidParams, Message: fmt.Sprintf("Query rejected: %v", err)}
	}

	ctx, cancel := context.WithTimeout(s.ctx, QueryTimeout)
	defer cancel()

	if _, err := s.gateway.Exec(ctx, query); err != nil {
		s.logger.Error("create_table failed", zap.Error(err))
		return nil, &Error{Code: InternalError, Message: fmt.Sprintf("Database error: %v", err)}
	}

	return textContent("Table created successfully"), nil
}

func (s *MCPServer) execListTables() (*CallToolResult, *Error) {
	query, queryArgs := s.adapter.ListTablesQuery(s.databaseName)

	ctx, cancel := context.WithTimeout(s.ctx, QueryTimeout)
	defer cancel()

	rows, err := s.gateway.Query(ctx, query, queryArgs...)
	if err != nil {
		s.logger.Error("list_tables failed", zap.Error(err))
		return nil, &Error{Code: InternalError, Message: fmt.Sprintf("Database error: %v", err)}
	}

	tables := make([]string, 0, len(rows))
	for _, row := range rows {
		if name, ok := row["table_name"].(string); ok {
			tables = append(tables, name)
		}
	}
	return jsonContent(tables)
}

func (s *MCPServer) execDescribeTable(args map[string]any) (*CallToolResult, *Error) {
	tableName, argErr := stringArg(args, "table_name")
	if argErr != nil {
		return nil, argErr
	}

	query, queryArgs := s.adapter.DescribeTableQuery(s.databaseName, tableName)

	ctx, cancel := context.WithTimeout(s.ctx, QueryTimeout)
	defer cancel()

	rows, err := s.gateway.Query(ctx, query, queryArgs...)
	if err != nil {
		s.logger.Error("describe_table failed", zap.String("table", tableName), zap.Error(err))
		return nil, &Error{Code: InternalError, Message: fmt.Sprintf("Database error: %v", err)}
	}

	columns := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		columns = append(columns, s.adapter.NormalizeColumn(row))
	}
	return jsonContent(columns)
}

func (s *MCPServer) execAppendInsight(args map[string]any) (*CallToolResult, *Error) {
	insight, argErr := stringArg(args, "insight")
	if argErr != nil {
		return nil, argErr
	}

	id := s.insights.Append(insight)
	return textContent(fmt.Sprintf("Insight %d added to the memo", id)), nil
}

func (s *MCPServer) handleListResources() (*ListResourcesResult, *Error) {
	return &ListResourcesResult{
		Resources: []Resource{
			{
				URI:      InsightsURI,
				Name:     "Business Insights Memo",
				MimeType: "text/plain",
			},
		},
	}, nil
}

func (s *MCPServer) handleListResourceTemplates() (*ListResourceTemplatesResult, *Error) {
	// No templated resources exist.
	return &ListResourceTemplatesResult{ResourceTemplates: []ResourceTemplate{}}, nil
}

func (s *MCPServer) handleReadResource(params json.RawMessage) (*ReadResourceResult, *Error) {
	var readParams ReadResourceParams
	if err := json.Unmarshal(params, &readParams); err != nil {
		return nil, &Error{
			Code:    InvalidParams,
			Message: "Invalid parameters",
			Data:    err.Error(),
		}
	}

	if readParams.URI != InsightsURI {
		return nil, &Error{
			Code:    InvalidRequest,
			Message: fmt.Sprintf("Unknown resource: %s", readParams.URI),
		}
	}

	return &ReadResourceResult{
		Contents: []ResourceContent{
			{
				URI:      InsightsURI,
				MimeType: "text/plain",
				Text:     s.insights.Memo(),
			},
		},
	}, nil
}

func textContent(text string) *CallToolResult {
	return &CallToolResult{Content: []Content{{Type: "text", Text: text}}}
}

func jsonContent(v any) (*CallToolResult, *Error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, &Error{Code: InternalError, Message: fmt.Sprintf("Failed to marshal results: %v", err)}
	}
	return textContent(string(data)), nil
}
