package landmark

import (
	"PresenceCoach/internal/entity"
	"fmt"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"os"
	"sync"
	"time"
)

const defaultDetectorURL = "ws://localhost:8000/api/v1/landmarks/ws"

type webSocketDetector struct {
	url          string
	conn         *websocket.Conn
	mu           sync.Mutex // guards conn and serializes round trips
	log          *logrus.Logger
	pingInterval time.Duration
	timeout      time.Duration
	done         chan struct{}
	closeOnce    sync.Once
}

// NewWebSocketDetector builds a detector client from LANDMARK_DETECTOR_URL and
// LANDMARK_DETECTOR_TIMEOUT and starts connecting in the background.
func NewWebSocketDetector(log *logrus.Logger) Detector {
	url := os.Getenv("LANDMARK_DETECTOR_URL")
	if url == "" {
		url = defaultDetectorURL
	}

	timeout, err := time.ParseDuration(os.Getenv("LANDMARK_DETECTOR_TIMEOUT"))
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
	}

	d := newWebSocketDetector(url, timeout, log)
	go d.connectInBackground()
	return d
}

// NewWebSocketDetectorWithURL returns a client that dials url on first use.
func NewWebSocketDetectorWithURL(url string, timeout time.Duration, log *logrus.Logger) Detector {
	return newWebSocketDetector(url, timeout, log)
}

func newWebSocketDetector(url string, timeout time.Duration, log *logrus.Logger) *webSocketDetector {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &webSocketDetector{
		url:          url,
		log:          log,
		pingInterval: 30 * time.Second,
		timeout:      timeout,
		done:         make(chan struct{}),
	}
}

func (d *webSocketDetector) connectInBackground() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.connectLocked(); err != nil {
		d.log.Warnf("Initial connection to landmark detector failed: %v. Will retry on demand.", err)
		return
	}
	d.log.Infof("Connected to landmark detector at %s", d.url)
}

func (d *webSocketDetector) connectLocked() error {
	if d.conn != nil {
		return nil
	}

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = d.timeout

	conn, _, err := dialer.Dial(d.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", d.url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(d.timeout))
		if err != nil {
			d.log.Warnf("Error sending pong to landmark detector: %v", err)
		}
		return nil
	})

	d.conn = conn
	go d.keepAlive(conn)

	return nil
}

func (d *webSocketDetector) dropLocked() {
	if d.conn != nil {
		d.conn.Close()
		d.conn = nil
	}
}

func (d *webSocketDetector) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(d.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-d.done:
			return
		case <-ticker.C:
		}

		d.mu.Lock()
		if d.conn != conn {
			d.mu.Unlock()
			return
		}

		err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(d.timeout))
		if err != nil {
			d.log.Warnf("Ping to landmark detector failed, marking connection as dead: %v", err)
			d.dropLocked()
			d.mu.Unlock()
			return
		}
		d.mu.Unlock()
	}
}

// Detect sends one binary frame and waits for the matching JSON reply.
// Calls are serialized: the detector answers frames strictly in order.
func (d *webSocketDetector) Detect(ctx context.Context, frame []byte) (*entity.DetectionSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	select {
	case <-d.done:
		return nil, ErrNotConnected
	default:
	}

	if err := d.connectLocked(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConnected, err)
	}
	conn := d.conn

	deadline := time.Now().Add(d.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	conn.SetWriteDeadline(deadline)
	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		d.dropLocked()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("error sending frame to landmark detector: %w", err)
	}

	conn.SetReadDeadline(deadline)
	_, message, err := conn.ReadMessage()
	if err != nil {
		d.dropLocked()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("error reading landmark detector reply: %w", err)
	}

	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})

	snapshot, err := decodeReply(message)
	if err != nil {
		return nil, fmt.Errorf("landmark detector reply: %w", err)
	}

	d.log.WithFields(logrus.Fields{
		"frame_bytes": len(frame),
		"faces":       len(snapshot.Faces),
		"hands":       len(snapshot.Hands),
		"pose":        snapshot.HasPose(),
	}).Debug("Received landmarks")

	return snapshot, nil
}

func (d *webSocketDetector) Close() error {
	d.closeOnce.Do(func() {
		close(d.done)
	})

	d.mu.Lock()
	defer d.mu.Unlock()
	d.dropLocked()
	return nil
}
