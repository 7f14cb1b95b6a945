// Package devserver holds the development conveniences of the site server:
// a websocket hub that tells browsers to reload, a debounced file watcher,
// and middleware injecting the reload script into served HTML pages.
//
//	hub := devserver.NewHub(log)
//	w, _ := devserver.NewWatcher([]string{"dist"}, devserver.DefaultDebounce, log)
//	router.Handle("/livereload", hub)
//	router.Static("/", "dist", devserver.InjectReload("/livereload"))
//	go w.Run(ctx, func(string) { hub.Reload() })
package devserver
