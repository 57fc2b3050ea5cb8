package render

import (
	"fmt"
	"runtime"

	"github.com/duskforge/render/cmdbuf"
)

// Init starts the consumer goroutine, initializes the backend and executes
// the first (empty) frame so the backend is ready before Init returns.
func (r *Renderer) Init() {
	if r.stopped {
		panic("render: renderer was shut down")
	}
	if r.running {
		panic("render: renderer is already running")
	}
	r.running = true
	r.done = make(chan struct{})

	Logger().Info("render: init", "backend", r.dispatcher.Name())
	go r.renderLoop()

	r.submit.commands.WriteOp(cmdbuf.OpInitRenderer)
	r.Frame()
}

// Frame hands the accumulated frame to the consumer and blocks until it has
// been fully executed. On return the submit context has been swapped for a
// fresh one and all handles created this frame are live on the backend.
func (r *Renderer) Frame() {
	r.ensureRunning()
	r.submit.finish()
	r.renderMay <- struct{}{}
	<-r.frameDone
	r.frames++
}

// Shutdown tears down the backend and stops the consumer goroutine. The
// renderer cannot be restarted afterwards.
func (r *Renderer) Shutdown() {
	r.ensureRunning()
	r.submit.commands.WriteOp(cmdbuf.OpShutdownRenderer)
	r.Frame()
	<-r.done
	r.running = false
	r.stopped = true
	Logger().Info("render: shutdown", "frames", r.frames)
}

// renderLoop is the consumer. It alternates with the producer through the
// renderMay/frameDone handshake: swap contexts, decode the command stream,
// flush buffered constants, render the frame, recycle the context.
func (r *Renderer) renderLoop() {
	// Graphics APIs tend to bind their context to the creating thread.
	runtime.LockOSThread()
	defer close(r.done)

	log := Logger()
	for {
		<-r.renderMay

		r.submit, r.draw = r.draw, r.submit
		running := r.executeCommands(r.draw)
		r.applyConstants(r.draw)

		if r.backendReady {
			f := r.draw.frame()
			if err := r.dispatcher.Render(f); err != nil {
				panic(fmt.Sprintf("render: backend render failed: %v", err))
			}
			r.lastDraws = len(f.Draws)
		} else {
			r.lastDraws = 0
		}
		log.Debug("render: frame", "commands", r.lastCommands, "draws", r.lastDraws)

		r.draw.reset()
		r.frameDone <- struct{}{}

		if !running {
			return
		}
	}
}
