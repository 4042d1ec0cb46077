// ws.go introspects endpoints over the graphql-transport-ws protocol.

package cmd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

const (
	wsSubprotocol = "graphql-transport-ws"

	wsWriteWait = 10 * time.Second
	wsReadWait  = 60 * time.Second

	wsConnectionInit = "connection_init"
	wsConnectionAck  = "connection_ack"
	wsPing           = "ping"
	wsPong           = "pong"
	wsSubscribe      = "subscribe"
	wsNext           = "next"
	wsError          = "error"
	wsComplete       = "complete"

	wsOperationID = "1"
)

type wsMessage struct {
	ID      string              `json:"id,omitempty"`
	Type    string              `json:"type"`
	Payload jsoniter.RawMessage `json:"payload,omitempty"`
}

type wsConn struct {
	*websocket.Conn
	deadline time.Time
}

func (c *wsConn) send(msg wsMessage) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	if err = c.SetWriteDeadline(c.limit(wsWriteWait)); err != nil {
		return err
	}
	return c.WriteMessage(websocket.TextMessage, b)
}

func (c *wsConn) recv() (msg wsMessage, err error) {
	if err = c.SetReadDeadline(c.limit(wsReadWait)); err != nil {
		return
	}

	_, b, err := c.ReadMessage()
	if err != nil {
		return
	}
	err = json.Unmarshal(b, &msg)
	return
}

// limit returns now+d, capped at the context deadline.
func (c *wsConn) limit(d time.Duration) time.Time {
	t := time.Now().Add(d)
	if !c.deadline.IsZero() && c.deadline.Before(t) {
		return c.deadline
	}
	return t
}

// introspectWS runs the introspection query as a single subscription
// operation and returns the data of its result.
//
func introspectWS(ctx context.Context, endpoint *url.URL, headers http.Header) ([]byte, error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: wsWriteWait,
		Subprotocols:     []string{wsSubprotocol},
	}

	zap.L().Info("fetching types via introspection", zap.String("endpoint", endpoint.Redacted()), zap.Strings("headers", headerNames(headers)))
	conn, _, err := dialer.DialContext(ctx, endpoint.String(), expandHeaders(headers))
	if err != nil {
		return nil, fmt.Errorf("gqldoc: could not connect to %s: %w", endpoint.Redacted(), err)
	}
	defer conn.Close()

	c := &wsConn{Conn: conn}
	c.deadline, _ = ctx.Deadline()

	// Unblock any pending read once ctx is done.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if err = c.send(wsMessage{Type: wsConnectionInit, Payload: jsoniter.RawMessage("{}")}); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(introReq)
	if err != nil {
		return nil, err
	}

	var (
		resp gqlResp
		got  bool
	)
	for {
		msg, err := c.recv()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if !c.deadline.IsZero() && !time.Now().Before(c.deadline) {
				return nil, context.DeadlineExceeded
			}
			return nil, err
		}
		zap.L().Debug("received message", zap.String("type", msg.Type))

		switch msg.Type {
		case wsConnectionAck:
			err = c.send(wsMessage{ID: wsOperationID, Type: wsSubscribe, Payload: payload})
		case wsPing:
			err = c.send(wsMessage{Type: wsPong})
		case wsPong:
		case wsNext:
			if msg.ID != wsOperationID {
				continue
			}
			if err = json.Unmarshal(msg.Payload, &resp); err != nil {
				return nil, fmt.Errorf("gqldoc: invalid response from %s: %w", endpoint.Redacted(), err)
			}
			got = true
		case wsError:
			var errs []gqlError
			if err = json.Unmarshal(msg.Payload, &errs); err != nil {
				return nil, fmt.Errorf("gqldoc: invalid error from %s: %w", endpoint.Redacted(), err)
			}
			resp.Errors = errs
			return resp.data(endpoint.Redacted())
		case wsComplete:
			if !got {
				return nil, ResponseError{Endpoint: endpoint.Redacted(), Messages: []string{"operation completed without a result"}}
			}

			c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return resp.data(endpoint.Redacted())
		default:
			err = fmt.Errorf("gqldoc: unexpected message from %s: %s", endpoint.Redacted(), msg.Type)
		}
		if err != nil {
			return nil, err
		}
	}
}
