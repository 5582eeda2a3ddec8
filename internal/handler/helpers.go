package handler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// getPathParamInt64 retrieves a path parameter and parses it as an int64 id
func getPathParamInt64(c *gin.Context, paramName string) (int64, error) {
	value := c.Param(paramName)
	if value == "" {
		return 0, fmt.Errorf("%s is required", paramName)
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", paramName)
	}

	return id, nil
}

// getQueryInt retrieves an integer query parameter with a default value
func getQueryInt(c *gin.Context, paramName string, defaultValue int) (int, error) {
	valueStr := c.Query(paramName)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", paramName)
	}

	return value, nil
}

// bindJSON binds JSON request body to a struct
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return fmt.Errorf("invalid JSON format: %v", err)
	}
	return nil
}

// validatePagination validates and returns pagination parameters
func validatePagination(page, limit int) error {
	if page < 1 {
		return fmt.Errorf("page must be greater than 0")
	}
	if limit < 1 || limit > 100 {
		return fmt.Errorf("limit must be between 1 and 100")
	}
	return nil
}

// logError emits a structured error log line for a failed request
func logError(c *gin.Context, event string, err error, fields map[string]interface{}) {
	entry := map[string]interface{}{
		"timestamp": time.Now().Format(time.RFC3339),
		"level":     "error",
		"event":     event,
		"method":    c.Request.Method,
		"path":      c.Request.URL.Path,
		"error":     err.Error(),
	}
	for k, v := range fields {
		entry[k] = v
	}

	jsonBytes, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		fmt.Printf(`{"level":"error","event":%q,"error":%q}%s`, event, err.Error(), "\n")
		return
	}
	fmt.Println(string(jsonBytes))
}
