// cmd/bankdesk/main.go

// 本程式提供單一帳戶的終端機操作介面：建立帳戶、存提款、利息 / 手續費、
// 存檔與載入。此檔案負責讀取設定、初始化模組（config, storage, bank, console），
// 啟動閒置 watchdog；設定 session.save_on_exit 時於結束前保存目前帳戶。

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"bankdesk/internal/bank"
	"bankdesk/internal/config"
	"bankdesk/internal/console"
	"bankdesk/internal/storage"
)

func main() {
	cfgPath := flag.String("config", "bankdesk.yaml", "path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error(err.Error(), slog.String("op", "config"))
		os.Exit(1)
	}
	level, _ := cfg.LogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	store, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		slog.Error(err.Error(), slog.String("op", "storage"))
		os.Exit(1)
	}
	defer store.Close()

	// watchdog 通知需要 console，console 又需要 session，因此延後綁定。
	var con *console.Console
	sess := bank.NewSession(store, cfg.Policy(), bank.WithNotifier(func(ev bank.Event) {
		con.Notify(ev)
	}))
	con = console.New(sess, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go sess.RunWatchdog(ctx, cfg.Session.WatchdogInterval)

	done := make(chan error, 1)
	go func() { done <- con.Run(ctx, os.Stdin) }()

	select {
	case err = <-done:
	case <-ctx.Done():
	}

	con.Shutdown(cfg.Session.SaveOnExit)
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error(err.Error(), slog.String("op", "console"))
	}
}
