package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"shiftpay/internal/config"
	"shiftpay/internal/exporter"
	"shiftpay/internal/importer"
)

var (
	year       = flag.Int("year", 0, "対象年 (config.toml を上書き)")
	months     = flag.String("months", "", "対象月のカンマ区切り、指定順に処理 (例: 1,2,3)")
	inputDir   = flag.String("input", "", "勤怠ブックのディレクトリ (config.toml を上書き)")
	outputDir  = flag.String("out", "", "出力先ディレクトリ (config.toml を上書き)")
	initConfig = flag.Bool("initConfig", false, "既定の config.toml を書き出して終了")
)

func main() {
	_ = godotenv.Load()
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Shiftpay - シフト給与自動計算ツール")
	fmt.Println("==========================================")

	if *initConfig {
		if err := config.SaveConfig(config.DefaultConfig()); err != nil {
			log.Fatalf("config.toml の書き出しに失敗: %v", err)
		}
		fmt.Println("既定の config.toml を書き出しました")
		return
	}

	// 設定を読み込む
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("設定の読み込みに失敗、既定値で続行: %v", err)
		cfg = config.DefaultConfig()
	}

	// コマンドライン引数で設定を上書き
	if *year > 0 {
		cfg.Payroll.Year = *year
	}
	if *months != "" {
		ms, err := config.ParseMonths(*months)
		if err != nil {
			log.Fatalf("-months の指定が不正です: %v", err)
		}
		cfg.Payroll.Months = ms
	}
	if *inputDir != "" {
		cfg.Input.Dir = *inputDir
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("設定が不正です: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("集計に失敗しました: %v", err)
	}
}

func run(cfg *config.AppConfig) error {
	co := importer.NewCoordinator(cfg)
	co.Logf = func(format string, args ...interface{}) {
		fmt.Printf(format+"\n", args...)
	}

	report, runReport, err := co.Run()
	if err != nil {
		return err
	}

	ex := exporter.NewExporter()
	book, err := ex.Build(report)
	if err != nil {
		return err
	}

	outPath := exporter.OutputPath(config.OutputDir(cfg), cfg.Payroll.Year, cfg.Payroll.Months)
	if err := ex.Write(book, outPath); err != nil {
		return err
	}

	fmt.Printf("出力: %s\n", outPath)
	fmt.Printf("集計: %d行 (解析失敗 %d, 時給未登録 %d), 所要 %s\n",
		runReport.TotalRows, runReport.ParseFailures, runReport.MissingWages, runReport.Duration)
	fmt.Println("勤務時間の計算が完了しました")
	return nil
}
