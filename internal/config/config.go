package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 応用設定
type AppConfig struct {
	Payroll PayrollConfig      `toml:"payroll"`
	Input   InputConfig        `toml:"input"`
	Output  OutputConfig       `toml:"output"`
	Wages   map[string]float64 `toml:"wages"`
}

// PayrollConfig 集計対象の指定
type PayrollConfig struct {
	Year   int   `toml:"year"`
	Months []int `toml:"months"` // 並び順のまま処理される
}

// InputConfig 入力設定
type InputConfig struct {
	Dir string `toml:"dir"` // 勤怠ブックの置き場所。相対なら実行ファイル基準。
}

// OutputConfig 出力設定
type OutputConfig struct {
	Dir string `toml:"dir"` // 空なら入力ディレクトリに出力する
}

// DefaultConfig 既定の設定
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Payroll: PayrollConfig{
			Year:   2026,
			Months: []int{1, 2, 3},
		},
		Input: InputConfig{
			Dir: ".",
		},
		Output: OutputConfig{
			Dir: "",
		},
		Wages: map[string]float64{
			"田中": 1400,
			"鈴木": 1300,
			"佐藤": 1200,
		},
	}
}

// GetExeDir 実行ファイルのあるディレクトリを返す
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig 実行ファイルと同じ場所の config.toml から設定を読み込む。
// ファイルが無ければ既定値を返す。環境変数 SHIFTPAY_* が最後に適用される。
func LoadConfig() (*AppConfig, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		// 実行ファイルの場所が取れない場合はカレントディレクトリを使う
		exeDir = "."
	}
	return loadConfigFrom(filepath.Join(exeDir, "config.toml"))
}

func loadConfigFrom(path string) (*AppConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config)
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("config.toml の解釈に失敗: %w", err)
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides 環境変数による上書き（E2E・手元実行用）
func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("SHIFTPAY_YEAR"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			config.Payroll.Year = year
		}
	}
	if v := os.Getenv("SHIFTPAY_MONTHS"); v != "" {
		if months, err := ParseMonths(v); err == nil {
			config.Payroll.Months = months
		}
	}
	if v := os.Getenv("SHIFTPAY_INPUT_DIR"); v != "" {
		config.Input.Dir = v
	}
	if v := os.Getenv("SHIFTPAY_OUTPUT_DIR"); v != "" {
		config.Output.Dir = v
	}
}

// SaveConfig 設定を実行ファイルと同じ場所の config.toml に書き出す
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// ParseMonths "2,1,3" 形式の月リストを解釈する。並び順は保持する。
func ParseMonths(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	months := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		m, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("月の指定 %q を解釈できません", p)
		}
		months = append(months, m)
	}
	if len(months) == 0 {
		return nil, errors.New("対象月が空です")
	}
	return months, nil
}

// Validate 設定の整合性を確認する。違反は実行前に致命エラーとする。
func Validate(config *AppConfig) error {
	if config.Payroll.Year <= 0 {
		return fmt.Errorf("対象年が不正です: %d", config.Payroll.Year)
	}
	if len(config.Payroll.Months) == 0 {
		return errors.New("対象月が指定されていません")
	}
	for _, m := range config.Payroll.Months {
		if m < 1 || m > 12 {
			return fmt.Errorf("対象月が範囲外です: %d", m)
		}
	}
	return nil
}

// ResolveDir 相対パスを実行ファイル基準の絶対パスに解決する
func ResolveDir(dir string) string {
	if dir == "" {
		dir = "."
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, dir)
}

// OutputDir 出力先ディレクトリを返す。未指定なら入力側に揃える。
func OutputDir(config *AppConfig) string {
	if config.Output.Dir != "" {
		return ResolveDir(config.Output.Dir)
	}
	return ResolveDir(config.Input.Dir)
}
