package ui

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/cdelgado/portfolio/internal/config"
	"github.com/cdelgado/portfolio/pkg/contact"
	"github.com/cdelgado/portfolio/pkg/dom/domtest"
	"github.com/cdelgado/portfolio/pkg/scheduler"
)

const page = `<!DOCTYPE html>
<html lang="en">
<head><title>Portfolio</title></head>
<body>
<nav id="navbar">
  <a href="#" class="logo">CD</a>
  <ul class="nav-menu">
    <li><a href="#home" class="nav-link" data-en="Home" data-es="Inicio">Home</a></li>
    <li><a href="#about" class="nav-link" data-en="About" data-es="Sobre mí">About</a></li>
    <li><a href="#contact" class="nav-link" data-en="Contact" data-es="Contacto">Contact</a></li>
  </ul>
  <button class="theme-toggle" aria-label="theme">T</button>
  <button class="lang-toggle"><span class="lang-text">EN</span></button>
  <button class="mobile-menu-toggle" aria-expanded="false"><span></span><span></span><span></span></button>
</nav>

<section id="home">
  <h1 data-en="Hello" data-es="Hola">Hello</h1>
  <p data-en="Only English" data-es="">Only English</p>
  <a href="#missing" class="ghost">ghost</a>
  <div class="scroll-indicator">v</div>
</section>

<section id="about">
  <div class="about-photo"><img src="me.jpg" alt="me"></div>
  <div class="about-text"><p>About me</p></div>
  <div class="timeline">
    <div class="timeline-item">2019</div>
    <div class="timeline-item">2021</div>
    <div class="timeline-item">2023</div>
  </div>
  <div class="skill-category">Go</div>
  <div class="skill-category">Web</div>
  <div class="project-card">A</div>
  <div class="project-card">B</div>
  <img loading="lazy" data-src="/img/a.png" alt="a">
  <img loading="lazy" alt="no source">
  <span role="button" tabindex="0" class="fake-button">Press</span>
  <button role="button" class="real-button">Real</button>
  <a href="https://github.com/" target="_blank">GitHub</a>
  <a href="/cv.pdf" download>CV</a>
</section>

<section id="contact">
  <form id="contactForm">
    <input type="text" name="name" data-en="Your name" data-es="Tu nombre" placeholder="Your name">
    <input type="email" name="email" placeholder="Email">
    <textarea name="message" data-en="Your message" data-es="Tu mensaje" placeholder="Your message"></textarea>
    <button type="submit" data-en="Send" data-es="Enviar">Send</button>
  </form>
  <div id="formStatus" class="form-status"></div>
</section>
</body>
</html>`

// harness is a page with a virtual clock and a captured log.
type harness struct {
	doc   *domtest.Document
	win   *domtest.Window
	sched *scheduler.Manual
	env   *Env
	logs  *bytes.Buffer
}

func newHarness(t *testing.T, src string, opts ...func(*domtest.Document)) *harness {
	t.Helper()
	doc := domtest.MustParse(t, src)
	for _, opt := range opts {
		opt(doc)
	}
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sched := scheduler.NewManual()

	env := NewEnv(doc, doc.Window(), sched, config.DefaultConfig(), logger)
	env.Submitter = &fakeSubmitter{}
	return &harness{doc: doc, win: doc.Window(), sched: sched, env: env, logs: logs}
}

// withStored seeds localStorage before the env reads it.
func withStored(key, value string) func(*domtest.Document) {
	return func(doc *domtest.Document) {
		_ = doc.Window().Storage().SetItem(key, value)
	}
}

// fakeSubmitter records messages and fails when err is set.
type fakeSubmitter struct {
	mu   sync.Mutex
	got  []contact.Message
	err  error
	gate chan struct{}
}

func (f *fakeSubmitter) Submit(_ context.Context, msg contact.Message) error {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, msg)
	return f.err
}

func (f *fakeSubmitter) messages() []contact.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]contact.Message(nil), f.got...)
}
