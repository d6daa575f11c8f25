package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"taiscore/common/config"
	"taiscore/common/log"
	"taiscore/scorer/app"
)

var (
	configFile string
	logLevel   string
	format     string
	handPath   string
	workers    int
)

var rootCmd = &cobra.Command{
	Use:   "scorer",
	Short: "台湾十六张麻将计台工具",
	Long:  `台湾十六张麻将计台工具：计台、听牌分析、批量计分`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configFile)
		if err != nil {
			return err
		}
		level := c.Log.Level
		if cmd.Flags().Changed("logLevel") {
			level = logLevel
		}
		log.InitLog(c.AppName, level)
		log.Debug("配置文件: %+v", *c)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "计算一手和牌的台数",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options(cmd)
		if err != nil {
			return err
		}
		return app.RunScore(cmd.Context(), opts, handPath)
	},
}

var waitsCmd = &cobra.Command{
	Use:   "waits",
	Short: "列出十六张手牌的听牌",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options(cmd)
		if err != nil {
			return err
		}
		return app.RunWaits(cmd.Context(), opts, handPath)
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "并发计算文件中的多手牌",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("workers") {
			c := *config.Get()
			c.Batch.Workers = max(workers, 1)
			return app.RunBatchWith(cmd.Context(), opts, &c, handPath)
		}
		return app.RunBatch(cmd.Context(), opts, handPath)
	},
}

func options(cmd *cobra.Command) (app.Options, error) {
	f, err := app.ParseFormat(format)
	if err != nil {
		return app.Options{}, err
	}
	return app.Options{ConfigFile: configFile, Format: f, Out: cmd.OutOrStdout()}, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "resource", "", "resource file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "logLevel", "info", "log level: debug, info, warn, error")

	for _, cmd := range []*cobra.Command{scoreCmd, waitsCmd, batchCmd} {
		cmd.Flags().StringVar(&format, "format", "text", "output format: text, yaml, json")
		rootCmd.AddCommand(cmd)
	}
	scoreCmd.Flags().StringVar(&handPath, "hand", "", "hand file (yaml)")
	scoreCmd.MarkFlagRequired("hand")
	waitsCmd.Flags().StringVar(&handPath, "hand", "", "hand file (yaml)")
	waitsCmd.MarkFlagRequired("hand")
	batchCmd.Flags().StringVar(&handPath, "hands", "", "batch file (yaml, top-level key hands)")
	batchCmd.MarkFlagRequired("hands")
	batchCmd.Flags().IntVar(&workers, "workers", 0, "concurrent workers, overrides batch.workers")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, app.ErrRejected) {
			os.Exit(2)
		}
		log.Error("发生异常: %v", err)
		os.Exit(1)
	}
}
