package config

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const swagVersion = "v1.16.6"

// GenerateSwaggerDocs 执行 swag init，输出到 Swagger.DocPath 所在目录
func GenerateSwaggerDocs(ctx context.Context) error {
	args := []string{
		"run",
		"github.com/swaggo/swag/cmd/swag@" + swagVersion,
		"init",
		"-g", "cmd/server/main.go",
		"-o", filepath.Dir(Conf.Swagger.DocPath),
		"--outputTypes", "json",
		"--parseDependency",
		"--parseInternal",
	}

	// 避免卡住启动流程
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	cmd := exec.CommandContext(ctx, "go", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("swag init 失败: %w; stdout: %s; stderr: %s",
			err, strings.TrimSpace(stdout.String()), strings.TrimSpace(stderr.String()))
	}
	return nil
}
