package transport

// Phase is a connection lifecycle state, surfaced so callers can observe
// a dial's progress instead of seeing only "connected" or "not".
type Phase int32

const (
	Disconnected Phase = iota
	DNSLookup
	TCPConnecting
	TLSHandshake
	WSHandshake
	Connected
	Closing
	Error
)

func (p Phase) String() string {
	switch p {
	case Disconnected:
		return "disconnected"
	case DNSLookup:
		return "dns_lookup"
	case TCPConnecting:
		return "tcp_connecting"
	case TLSHandshake:
		return "tls_handshake"
	case WSHandshake:
		return "ws_handshake"
	case Connected:
		return "connected"
	case Closing:
		return "closing"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// EventKind identifies what a Tick call wants the caller to do.
type EventKind int

const (
	// EventPing means the caller should write a ping frame now.
	EventPing EventKind = iota
	// EventPongTimeout means no pong arrived within PingTimeout; the
	// session should be torn down and reconnected.
	EventPongTimeout
	// EventReconnect means enough time has passed since the connection was
	// lost or the last Connect failed that the caller should try again.
	EventReconnect
)

// Event is one thing Tick wants the caller to act on.
type Event struct {
	Kind EventKind
}
