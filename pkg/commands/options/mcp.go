package options

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// MCPOptions selects how the MCP server is exposed.
type MCPOptions struct {
	Transport string
	HTTPHost  string
	HTTPPort  int
	HTTPPath  string
}

func AddMCPArgs(cmd *cobra.Command, o *MCPOptions) {
	cmd.Flags().StringVar(&o.Transport, "transport", "stdio", "transport to use: stdio or http")
	cmd.Flags().StringVar(&o.HTTPHost, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&o.HTTPPort, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&o.HTTPPath, "http-path", "/mcp", "HTTP endpoint path")
}

// Addr is the HTTP listen address.
func (o *MCPOptions) Addr() (string, error) {
	if o.HTTPPort < 0 || o.HTTPPort > 65535 {
		return "", fmt.Errorf("invalid http-port %d", o.HTTPPort)
	}
	host := strings.TrimSpace(o.HTTPHost)
	if host == "" {
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, strconv.Itoa(o.HTTPPort)), nil
}

// Path is the HTTP endpoint path with a leading slash.
func (o *MCPOptions) Path() string {
	path := strings.TrimSpace(o.HTTPPath)
	if path == "" {
		path = "/mcp"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
