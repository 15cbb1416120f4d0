package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	"skihide/pkg/core"
)

const dialTimeout = 2 * time.Second

type Client struct {
	path string
	log  core.Logger
}

func NewClient(path string, log core.Logger) *Client {
	if log == nil {
		log = core.Nop{}
	}
	return &Client{path: path, log: log}
}

func (c *Client) SendCommand(command string) (Response, error) {
	c.log.Debug("Attempting to connect to socket server", "path", c.path)

	conn, err := net.DialTimeout("unix", c.path, dialTimeout)
	if err != nil {
		return Response{}, fmt.Errorf("failed to connect to socket server: %w", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))

	req := Request{Command: command}
	encoder := json.NewEncoder(conn)
	if err := encoder.Encode(req); err != nil {
		return Response{}, fmt.Errorf("failed to encode request: %w", err)
	}

	c.log.Debug("Request sent successfully", "command", command)

	var resp Response
	decoder := json.NewDecoder(conn)
	if err := decoder.Decode(&resp); err != nil {
		return Response{}, fmt.Errorf("failed to decode response: %w", err)
	}

	c.log.Debug("Response received", "status", resp.Status, "message", resp.Message)
	if resp.Status != StatusSuccess {
		return resp, fmt.Errorf("%s: %s", command, resp.Message)
	}
	return resp, nil
}

// Running reports whether another instance answers on the socket, asking
// it to bring its window forward.
func (c *Client) Running() bool {
	_, err := c.SendCommand(CommandShow)
	return err == nil
}
