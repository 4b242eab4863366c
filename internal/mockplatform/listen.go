package mockplatform

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Server is a running mock platform bound to a local listener.
type Server struct {
	URL string

	srv  *http.Server
	done chan struct{}
}

// Listen serves p on addr. Use "127.0.0.1:0" for an ephemeral port.
func (p *Platform) Listen(addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	s := &Server{
		URL:  "http://" + ln.Addr().String(),
		srv:  &http.Server{Handler: p.Router(), ReadHeaderTimeout: 5 * time.Second},
		done: make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		_ = s.srv.Serve(ln)
	}()
	return s, nil
}

// Close stops the server and waits for the serve loop to exit.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := s.srv.Shutdown(ctx)
	<-s.done
	return err
}
