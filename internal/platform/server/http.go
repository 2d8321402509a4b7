package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/adapters/http/handler"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/employee"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/role"
)

const httpShutdownTimeout = 10 * time.Second

// HTTPServer は REST API サーバーのライフサイクルを管理します。
type HTTPServer struct {
	listenAddr string
	app        *fiber.App
}

// NewHTTP は指定されたアドレスで待ち受ける HTTP サーバーを構築します。
func NewHTTP(listenAddr, allowOrigins string, employees employee.UseCase, roles role.UseCase) *HTTPServer {
	app := fiber.New(fiber.Config{
		AppName:               "careerpath",
		DisableStartupMessage: true,
		ErrorHandler:          handler.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	if allowOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: allowOrigins,
			AllowMethods: "GET,POST,OPTIONS",
			AllowHeaders: "Origin, Content-Type, Accept",
		}))
	}

	handler.NewCareerPathHTTPHandler(employees, roles).RegisterRoutes(app)

	return &HTTPServer{listenAddr: listenAddr, app: app}
}

// App はルーティング済みの fiber.App を返します。
func (s *HTTPServer) App() *fiber.App {
	return s.app
}

// Run はサーバーを起動し、コンテキストがキャンセルされるとシャットダウンします。
func (s *HTTPServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		_ = s.app.ShutdownWithContext(shutdownCtx)
	}()

	if err := s.app.Listener(lis); err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("serve HTTP: %w", err)
	}
	return nil
}
