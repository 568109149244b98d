package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shopping-api/api"
	"shopping-api/config"
	"shopping-api/infrastructure/persistence/gormrepo"
	"shopping-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用程序结构体
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	db     *gorm.DB
}

// Run 运行应用程序，收到 SIGINT/SIGTERM 后优雅关闭
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			zap.String("addr", a.server.Addr),
			zap.String("shoppings", fmt.Sprintf("http://localhost:%s/shoppings", a.config.Server.Port)),
			zap.String("health", fmt.Sprintf("http://localhost:%s/health", a.config.Server.Port)))

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err, ok := <-errCh:
		if ok {
			a.closeDB()
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-sigChan:
		logger.Info("Shutting down server", zap.String("signal", sig.String()))
	}

	return a.Shutdown(context.Background())
}

// Shutdown stops accepting requests, waits for in-flight ones and closes the pool.
func (a *App) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.config.Server.ShutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(ctx)
	if err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	a.closeDB()

	logger.Info("Server stopped")
	return err
}

func (a *App) closeDB() {
	if a.db == nil {
		return
	}
	if err := gormrepo.Close(a.db); err != nil {
		logger.Warn("Failed to close database", zap.Error(err))
	}
}

// GetServer 获取服务器实例（用于测试）
func (a *App) GetServer() *gin.Engine {
	return a.router.GetEngine()
}
