package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Pipeline        Pipeline        `mapstructure:",squash"`
	Columns         Columns         `mapstructure:",squash"`
	Store           Store           `mapstructure:",squash"`
	AmoCRM          AmoCRM          `mapstructure:",squash"`
	Telegram        Telegram        `mapstructure:",squash"`
	OpenAI          OpenAI          `mapstructure:",squash"`
	DailyReportSync DailyReportSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Pipeline holds the aggregation knobs: the status-to-category mapping,
// the margin rate, the sentinel employees excluded from employee-scoped
// metrics and the fixed offset used for day bucketing.
type Pipeline struct {
	MarginRate          float64  `mapstructure:"margin_rate"`
	SuccessfulStatuses  []string `mapstructure:"successful_statuses"`
	FailedStatuses      []string `mapstructure:"failed_statuses"`
	InProgressStatuses  []string `mapstructure:"in_progress_statuses"`
	ExcludedEmployees   []string `mapstructure:"excluded_employees"`
	TimezoneOffsetHours int      `mapstructure:"timezone_offset_hours"`
}

// Columns maps canonical column names to the header aliases accepted in
// the export. The source renamed several columns between versions, so
// the accepted names are configuration, not code.
type Columns struct {
	ID                  []string `mapstructure:"column_aliases_id"`
	Name                []string `mapstructure:"column_aliases_name"`
	Price               []string `mapstructure:"column_aliases_price"`
	StatusID            []string `mapstructure:"column_aliases_status_id"`
	ResponsibleEmployee []string `mapstructure:"column_aliases_responsible_employee"`
	CreatedAt           []string `mapstructure:"column_aliases_created_at"`
	UpdatedAt           []string `mapstructure:"column_aliases_updated_at"`
	ClosedAt            []string `mapstructure:"column_aliases_closed_at"`
}

type Store struct {
	Path string `mapstructure:"cumulative_store_path"`
}

type AmoCRM struct {
	ExportURL string `mapstructure:"amocrm_export_url"`
	SheetName string `mapstructure:"amocrm_export_sheet"`
}

type Telegram struct {
	BotToken string `mapstructure:"telegram_bot_token"`
	ChatID   int64  `mapstructure:"telegram_chat_id"`
}

type OpenAI struct {
	BaseURL string `mapstructure:"openai_base_url"`
	APIKey  string `mapstructure:"openai_api_key"`
	Model   string `mapstructure:"openai_model"`
}

type DailyReportSync struct {
	CronSchedule string `mapstructure:"daily_report_sync_cron"`
	Enabled      bool   `mapstructure:"daily_report_sync_enabled"`
}

// Location returns the fixed zone used for day bucketing.
func (p Pipeline) Location() *time.Location {
	return time.FixedZone("pipeline", p.TimezoneOffsetHours*3600)
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("MARGIN_RATE", 0.2)
	viper.SetDefault("SUCCESSFUL_STATUSES", "ОТПРАВКА В БУХГАЛТЕРИЮ,НА ПРОВЕРКЕ,ПОД ЗАКАЗ,ОТЛОЖЕННЫЙ,ОТПРАВЛЕНО,УСПЕШНО РЕАЛИЗОВАНО")
	viper.SetDefault("FAILED_STATUSES", "ЗАКРЫТО И НЕ РЕАЛИЗОВАНО")
	viper.SetDefault("IN_PROGRESS_STATUSES", "В РАБОТЕ | БРОНЬ,ВЫСТАВИЛ СЧЕТ,РАССЫЛКА,БЛИЖЕ К СЕЗОНУ,СДЕЛАЛИ ВТОРОЙ КОНТАКТ,B2B + Гос закуп,Квалификация +Прайс,Лиды просроченные,БИРЖА ЗАЯВОК")
	viper.SetDefault("EXCLUDED_EMPLOYEES", "Нераспределенные,Робот")
	viper.SetDefault("TIMEZONE_OFFSET_HOURS", 5) // Asia/Almaty, no DST

	viper.SetDefault("COLUMN_ALIASES_ID", "ID,id")
	viper.SetDefault("COLUMN_ALIASES_NAME", "Название,Название сделки,name")
	viper.SetDefault("COLUMN_ALIASES_PRICE", "Бюджет ₸,Бюджет,price")
	viper.SetDefault("COLUMN_ALIASES_STATUS_ID", "Статус,Этап сделки,status_id")
	viper.SetDefault("COLUMN_ALIASES_RESPONSIBLE_EMPLOYEE", "Ответственный,contact_responsible_user_id")
	viper.SetDefault("COLUMN_ALIASES_CREATED_AT", "Дата создания,created_at")
	viper.SetDefault("COLUMN_ALIASES_UPDATED_AT", "Дата изменения,updated_at")
	viper.SetDefault("COLUMN_ALIASES_CLOSED_AT", "Дата закрытия,closed_at")

	viper.SetDefault("CUMULATIVE_STORE_PATH", "data/cumulative_report.json")

	viper.SetDefault("AMOCRM_EXPORT_URL", "https://amo.promoweb.kz/amo.xlsx")
	viper.SetDefault("AMOCRM_EXPORT_SHEET", "")

	viper.SetDefault("TELEGRAM_BOT_TOKEN", "")
	viper.SetDefault("TELEGRAM_CHAT_ID", 0)

	viper.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_MODEL", "gpt-4")

	viper.SetDefault("DAILY_REPORT_SYNC_CRON", "0 0 * * *") // every day at midnight
	viper.SetDefault("DAILY_REPORT_SYNC_ENABLED", false)
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Using variables loaded by godotenv (viper could not read .env): ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	return config, nil
}

// loadEnvFile loads the .env file with godotenv, trying the usual
// locations relative to the working directory.
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Could not determine the working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info(".env file loaded from: ", location)
			return
		}
	}

	logrus.Info("No .env file found, relying on environment variables")
}
