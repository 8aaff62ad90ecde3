package mcpquic

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/quic-go/quic-go"
)

// Client is an MCP client speaking to a chassis or Listener over QUIC.
type Client struct {
	addr    string
	tlsCfg  *tls.Config
	version string

	conn   *quic.Conn
	stream *quic.Stream
	mcp    *client.Client
}

// NewClient prepares a client; nil tlsCfg accepts self-signed certificates.
func NewClient(addr string, tlsCfg *tls.Config, version string) *Client {
	if tlsCfg == nil {
		tlsCfg = ClientTLSConfig(true)
	}
	return &Client{addr: addr, tlsCfg: tlsCfg, version: version}
}

// Connect dials, sends the preamble and performs the MCP handshake.
func (c *Client) Connect(ctx context.Context) error {
	conn, err := quic.DialAddr(ctx, c.addr, c.tlsCfg, QUICConfig())
	if err != nil {
		return fmt.Errorf("quic dial %s: %w", c.addr, err)
	}
	if alpn := conn.ConnectionState().TLS.NegotiatedProtocol; alpn != ALPN {
		conn.CloseWithError(ConnErrorUnsupportedALPN, "bad ALPN")
		return fmt.Errorf("%w: got %q", ErrUnsupportedALPN, alpn)
	}

	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		conn.CloseWithError(ConnErrorProtocolViolation, "open stream")
		return fmt.Errorf("open stream: %w", err)
	}
	if err := WriteMagic(stream); err != nil {
		conn.CloseWithError(ConnErrorProtocolViolation, "preamble")
		return err
	}
	c.conn, c.stream = conn, stream

	mc := client.NewClient(transport.NewIO(stream, stream, io.NopCloser(eofReader{})))
	if err := mc.Start(ctx); err != nil {
		c.closeTransport()
		return fmt.Errorf("mcp start: %w", err)
	}

	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{Name: "ementa-cli", Version: c.version}

	initCtx, cancel := context.WithTimeout(ctx, HandshakeTimeout)
	defer cancel()
	if _, err := mc.Initialize(initCtx, req); err != nil {
		c.closeTransport()
		return fmt.Errorf("mcp initialize: %w", err)
	}
	c.mcp = mc
	return nil
}

func (c *Client) ListTools(ctx context.Context) (*mcp.ListToolsResult, error) {
	if c.mcp == nil {
		return nil, ErrNotConnected
	}
	return c.mcp.ListTools(ctx, mcp.ListToolsRequest{})
}

func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	if c.mcp == nil {
		return nil, ErrNotConnected
	}
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return c.mcp.CallTool(ctx, req)
}

func (c *Client) Close() error {
	if c.mcp != nil {
		c.mcp.Close()
		c.mcp = nil
	}
	c.closeTransport()
	return nil
}

func (c *Client) closeTransport() {
	if c.stream != nil {
		c.stream.Close()
	}
	if c.conn != nil {
		c.conn.CloseWithError(ConnErrorNoError, "client closing")
	}
}

// eofReader stands in for the stderr pipe the IO transport expects.
type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }
