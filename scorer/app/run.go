package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"taiscore/common/config"
	"taiscore/common/log"
)

// ErrRejected 手牌被拒绝（未和牌、张数不对等），结果已经输出
var ErrRejected = errors.New("hand rejected")

type Options struct {
	ConfigFile string
	Format     Format
	Out        io.Writer
}

func RunScore(ctx context.Context, opts Options, handPath string) error {
	hf, err := ReadHandFile(handPath)
	if err != nil {
		return err
	}
	scorer, err := NewScorer(config.Get())
	if err != nil {
		return err
	}
	defer scorer.Close()

	rep := scorer.Score(hf)
	if err := Render(opts.Out, opts.Format, rep); err != nil {
		return err
	}
	if rep.Rejected() {
		log.Info("手牌被拒绝: %s", rep.Reason)
		return fmt.Errorf("%w: %s", ErrRejected, rep.Rejection)
	}
	return nil
}

func RunWaits(ctx context.Context, opts Options, handPath string) error {
	hf, err := ReadHandFile(handPath)
	if err != nil {
		return err
	}
	scorer, err := NewScorer(config.Get())
	if err != nil {
		return err
	}
	defer scorer.Close()

	rep, err := scorer.Waits(hf)
	if err != nil {
		return err
	}
	return Render(opts.Out, opts.Format, rep)
}

func RunBatch(ctx context.Context, opts Options, handsPath string) error {
	return RunBatchWith(ctx, opts, config.Get(), handsPath)
}

// RunBatchWith 批量计分期间监听配置文件，别名和日志级别可热更新
func RunBatchWith(ctx context.Context, opts Options, c *config.Config, handsPath string) error {
	hands, err := ReadBatchFile(handsPath)
	if err != nil {
		return err
	}
	scorer, err := NewScorer(c)
	if err != nil {
		return err
	}
	defer scorer.Close()

	err = config.Watch(opts.ConfigFile, func(nc *config.Config, err error) {
		if err != nil {
			log.Warn("重新解析配置文件失败: %v", err)
			return
		}
		log.SetLevel(nc.Log.Level)
		if err := scorer.Reload(nc); err != nil {
			log.Warn("%v", err)
		}
		log.Info("配置文件已重新加载")
	})
	if err != nil {
		log.Warn("%v", err)
	}

	log.Info("批量计分 %d 手, workers=%d", len(hands), c.Batch.Workers)
	reports, err := scorer.Batch(ctx, hands, c.Batch.Workers)
	if err != nil {
		return err
	}
	rejected := 0
	for _, r := range reports {
		if r.Rejected() {
			rejected++
		}
	}
	log.Info("完成: %d 手和牌, %d 手被拒绝", len(reports)-rejected, rejected)
	return Render(opts.Out, opts.Format, reports)
}
