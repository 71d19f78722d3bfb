package commands

import (
	"fmt"
	"net"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/atas/pkg/commands/options"
	"tableflip.dev/atas/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	mo := &options.MCPOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes the roster, the sessions and every atas
command through the Model Context Protocol. Tool calls run one at a time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			l, err := loadLogic(cmd.Context())
			if err != nil {
				return err
			}

			runner := mcp.Runner{
				Logic:   l,
				Name:    "atas",
				Version: version,
			}

			switch strings.ToLower(strings.TrimSpace(mo.Transport)) {
			case "", string(mcp.TransportStdio):
				runner.Transport = mcp.TransportStdio
			case string(mcp.TransportHTTP):
				addr, err := mo.Addr()
				if err != nil {
					return err
				}
				path := mo.Path()
				runner.Transport = mcp.TransportHTTP
				runner.HTTPListenAddr = addr
				runner.HTTPEndpointPath = path
				runner.OnHTTPListening = func(a net.Addr) {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "MCP HTTP server listening on http://%s%s\n", a, path)
				}
			default:
				return fmt.Errorf("unsupported transport %q (expected stdio or http)", mo.Transport)
			}

			return runner.Do(cmd.Context())
		},
	}

	options.AddMCPArgs(cmd, mo)
	topLevel.AddCommand(cmd)
}
