package main

import (
	"github.com/spf13/cobra"

	"github.com/ByLCY/medreport/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动报告 HTTP 服务",
	Long: `启动报告 HTTP 服务。

接口：
  POST /api/v1/reports/narrative         生成 PDF
  POST /api/v1/reports/narrative/layout  返回排版指令（调试）
  GET  /health                           健康检查

Examples:
  medreport serve
  medreport serve --addr :3000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		addr := a.cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		engine, _, err := a.engine("")
		if err != nil {
			return err
		}
		svc, err := a.service(engine, nil)
		if err != nil {
			return err
		}

		srv := server.New(svc, server.Options{
			Addr:            addr,
			ShutdownTimeout: a.cfg.Server.ShutdownTimeout,
			Logger:          a.log.WithField("component", "http"),
		})
		return srv.Start(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "监听地址，覆盖配置中的 server.addr")
}
