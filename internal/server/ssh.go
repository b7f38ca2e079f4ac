// Package server exposes the render core over SSH: each session sees the
// shared framebuffer as ANSI half-blocks and steers its own sprite with the
// keyboard.
package server

import (
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"

	"picocalc-gfx/internal/assets"
	"picocalc-gfx/internal/display"
	"picocalc-gfx/internal/gfx"
	"picocalc-gfx/internal/gfxcore"
)

// viewRate is how often sessions sample the framebuffer, per second. The
// render core runs at its own cadence; terminals just can't keep up with
// 60 Hz of SGR output over the wire.
const viewRate = 30

// spriteStep is how many pixels one key press moves a session's sprite.
const spriteStep = 4

// playerSpriteSize is the square sprite size given to each session.
const playerSpriteSize = 16

// playerColors is the rotating sprite palette for new sessions.
var playerColors = [][3]uint8{
	{220, 60, 60},
	{60, 200, 60},
	{230, 200, 50},
	{80, 110, 230},
	{200, 70, 200},
	{60, 200, 200},
}

var nextColor atomic.Uint32

// SSHServer wraps the SSH listener and the render core it fronts.
type SSHServer struct {
	addr    string
	hostKey string
	core    *gfxcore.Core
	fb      *display.Framebuffer
}

// NewSSHServer creates a server bound to addr, viewing fb as driven by core.
func NewSSHServer(addr, hostKey string, core *gfxcore.Core, fb *display.Framebuffer) *SSHServer {
	return &SSHServer{
		addr:    addr,
		hostKey: hostKey,
		core:    core,
		fb:      fb,
	}
}

// Start begins listening for SSH connections. Blocks.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	log.Printf("SSH server listening on %s", s.addr)
	return server.ListenAndServe()
}

// action is a decoded key press.
type action int

const (
	actionUp action = iota
	actionDown
	actionLeft
	actionRight
	actionQuit
)

func (s *SSHServer) handleSession(sess ssh.Session) {
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}

	surfW, surfH := s.fb.Size()

	// Give the session its own sprite, parked mid-surface.
	c := playerColors[int(nextColor.Add(1)-1)%len(playerColors)]
	img := assets.BallSprite(playerSpriteSize, c[0], c[1], c[2])
	x := surfW/2 - playerSpriteSize/2
	y := surfH/2 - playerSpriteSize/2
	spriteID := s.core.CreateSprite(img, playerSpriteSize, playerSpriteSize, x, y, 10)
	if spriteID == gfx.InvalidSprite {
		fmt.Fprintln(sess, "No free sprite slots, try again later.")
		return
	}
	log.Printf("Session connected: %s (sprite %d)", username, spriteID)
	defer func() {
		s.core.DestroySprite(spriteID)
		log.Printf("Session disconnected: %s (sprite %d)", username, spriteID)
	}()

	renderer := display.NewTermRenderer(surfW, surfH, ptyReq.Window.Width, ptyReq.Window.Height)

	io.WriteString(sess, display.EnableAltScreen())
	io.WriteString(sess, display.HideCursor())
	io.WriteString(sess, display.ClearScreen())
	defer func() {
		io.WriteString(sess, display.ShowCursor())
		io.WriteString(sess, display.DisableAltScreen())
	}()

	quitCh := make(chan struct{})
	actionCh := make(chan action, 64)

	// Goroutine: read and decode input.
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				close(quitCh)
				return
			}
			for _, a := range parseInput(buf[:n]) {
				if a == actionQuit {
					close(quitCh)
					return
				}
				select {
				case actionCh <- a:
				default:
				}
			}
		}
	}()

	// Goroutine: track window resizes.
	var resizeMu sync.Mutex
	resized := false
	termW, termH := ptyReq.Window.Width, ptyReq.Window.Height
	go func() {
		for win := range winCh {
			resizeMu.Lock()
			termW, termH = win.Width, win.Height
			resized = true
			resizeMu.Unlock()
		}
	}()

	ticker := time.NewTicker(time.Second / viewRate)
	defer ticker.Stop()

	for {
		select {
		case <-quitCh:
			return
		case a := <-actionCh:
			switch a {
			case actionUp:
				y -= spriteStep
			case actionDown:
				y += spriteStep
			case actionLeft:
				x -= spriteStep
			case actionRight:
				x += spriteStep
			}
			// Keep at least one pixel on the surface.
			x = clamp(x, 1-playerSpriteSize, surfW-1)
			y = clamp(y, 1-playerSpriteSize, surfH-1)
			s.core.MoveSprite(spriteID, x, y)
		case <-ticker.C:
			resizeMu.Lock()
			if resized {
				renderer.Fit(termW, termH)
				io.WriteString(sess, display.ClearScreen())
				resized = false
			}
			resizeMu.Unlock()

			if out := renderer.Frame(s.fb); len(out) > 0 {
				io.WriteString(sess, out)
			}
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// parseInput converts raw bytes into actions. Handles WASD, arrow key escape
// sequences, Q, and Ctrl-C.
func parseInput(data []byte) []action {
	var actions []action
	i := 0
	for i < len(data) {
		// Escape sequences (arrow keys)
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			switch data[i+2] {
			case 'A':
				actions = append(actions, actionUp)
			case 'B':
				actions = append(actions, actionDown)
			case 'C':
				actions = append(actions, actionRight)
			case 'D':
				actions = append(actions, actionLeft)
			}
			i += 3
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'w', 'W':
			actions = append(actions, actionUp)
		case 's', 'S':
			actions = append(actions, actionDown)
		case 'a', 'A':
			actions = append(actions, actionLeft)
		case 'd', 'D':
			actions = append(actions, actionRight)
		case 'q', 'Q':
			actions = append(actions, actionQuit)
		case 3: // Ctrl-C
			actions = append(actions, actionQuit)
		}
		i += size
	}
	return actions
}
