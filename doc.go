// Package jterm is a small terminal UI toolkit: a tree of widgets that
// measure, lay out and paint themselves into a full-screen terminal, fed by
// a raw keyboard and mouse decoder and driven by a single-goroutine
// scheduler.
//
// A tree is built from three widget kinds. Container stacks its children
// vertically, Text shows wrapped read-only text, and Input is an editable
// field that posts a Submitted message on Enter:
//
//	log := jterm.NewContainer(jterm.WithID("log"), jterm.WithHeight(jterm.Fill()),
//		jterm.WithOverflow(jterm.OverflowAuto))
//	root := jterm.NewContainer().Add(log, jterm.NewInput(jterm.WithFocus()))
//
//	app, err := jterm.NewApp(root, jterm.OnMessage(func(m jterm.Submitted) {
//		log.Add(jterm.NewText(m.Value))
//		log.ScrollToBottom()
//	}))
//	if err != nil {
//		return err
//	}
//	defer app.Close()
//	return app.Run(ctx)
//
// Sizing policies are Fixed(n), Auto() and Fill(). Fill children share the
// height left over after their fixed and auto siblings, with any remainder
// going to the first Fill children.
//
// Every widget method runs on the scheduler goroutine. Code on other
// goroutines must not touch the tree.
package jterm
