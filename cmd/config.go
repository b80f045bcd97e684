package cmd

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/profiler"
	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	gormMySQL "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/traPtitech/pinboard/router"
	"github.com/traPtitech/pinboard/router/session"
	v1 "github.com/traPtitech/pinboard/router/v1"
	"github.com/traPtitech/pinboard/service/imaging"
	"github.com/traPtitech/pinboard/service/media"
	"github.com/traPtitech/pinboard/utils/random"
	"github.com/traPtitech/pinboard/utils/storage"
)

// Config 設定
type Config struct {
	// DevMode 開発モードかどうか (default: false)
	DevMode bool `mapstructure:"dev" yaml:"dev"`
	// Pprof pprofを有効にするかどうか (default: false)
	Pprof bool `mapstructure:"pprof" yaml:"pprof"`
	// Production 本番環境かどうか。trueの場合、セッションクッキーにSecure属性を付けます (default: false)
	Production bool `mapstructure:"production" yaml:"production"`

	// Origin クッキー付きリクエストを許可するクライアントのオリジン (default: http://localhost:5173)
	Origin string `mapstructure:"origin" yaml:"origin"`
	// Port サーバーポート番号 (default: 3000)
	Port int `mapstructure:"port" yaml:"port"`
	// Gzip レスポンスのGZIP圧縮を有効にするかどうか (default: true)
	Gzip bool `mapstructure:"gzip" yaml:"gzip"`
	// ShutdownTimeout シャットダウン時の待機時間(秒) (default: 10)
	ShutdownTimeout int `mapstructure:"shutdownTimeout" yaml:"shutdownTimeout"`

	// AccessLog HTTPアクセスログ設定
	AccessLog struct {
		// Enabled 有効かどうか (default: true)
		Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	} `mapstructure:"accessLog" yaml:"accessLog"`

	// MariaDB データベース接続設定
	MariaDB struct {
		// Host ホスト名 (default: 127.0.0.1)
		Host string `mapstructure:"host" yaml:"host"`
		// Port ポート番号 (default: 3306)
		Port int `mapstructure:"port" yaml:"port"`
		// Username ユーザー名 (default: root)
		Username string `mapstructure:"username" yaml:"username"`
		// Password パスワード (default: password)
		Password string `mapstructure:"password" yaml:"password"`
		// Database データベース名 (default: pinboard)
		Database string `mapstructure:"database" yaml:"database"`
		// Connection コネクション設定
		Connection struct {
			// MaxOpen 最大オープン接続数. 0は無制限 (default: 0)
			MaxOpen int `mapstructure:"maxOpen" yaml:"maxOpen"`
			// MaxIdle 最大アイドル接続数 (default: 2)
			MaxIdle int `mapstructure:"maxIdle" yaml:"maxIdle"`
			// LifeTime 待機接続維持時間. 0は無制限 (default: 0)
			LifeTime int `mapstructure:"lifetime" yaml:"lifetime"`
		} `mapstructure:"connection" yaml:"connection"`
	} `mapstructure:"mariadb" yaml:"mariadb"`

	// JWT セッショントークン設定
	JWT struct {
		// Secret HS256署名鍵。開発モードで空の場合は一時鍵を生成します
		Secret string `mapstructure:"secret" yaml:"secret"`
	} `mapstructure:"jwt" yaml:"jwt"`

	// Session セッション設定
	Session struct {
		// MaxAge セッションの有効期間(秒) (default: 30日)
		MaxAge int `mapstructure:"maxAge" yaml:"maxAge"`
	} `mapstructure:"session" yaml:"session"`

	// RateLimit レート制限設定
	RateLimit struct {
		// Auth 登録・ログインエンドポイントのレート制限
		Auth struct {
			// Rate 1秒あたりの許可リクエスト数 (default: 0.2)
			Rate float64 `mapstructure:"rate" yaml:"rate"`
			// Burst バースト数 (default: 10)
			Burst int `mapstructure:"burst" yaml:"burst"`
		} `mapstructure:"auth" yaml:"auth"`
	} `mapstructure:"rateLimit" yaml:"rateLimit"`

	// Imaging 画像処理設定
	Imaging struct {
		// MaxPixels 処理可能な最大画素数 (default: 4096*4096)
		MaxPixels int `mapstructure:"maxPixels" yaml:"maxPixels"`
		// Concurrency 処理並列数 (default: 2)
		Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
	} `mapstructure:"imaging" yaml:"imaging"`

	// Upload ピン画像アップロード設定
	Upload struct {
		// LimitMB リクエストボディの最大サイズ(MiB) (default: 20)
		LimitMB int64 `mapstructure:"limitMB" yaml:"limitMB"`
	} `mapstructure:"upload" yaml:"upload"`

	// Media ピン画像の変換・保存バックエンド設定
	Media struct {
		// Type バックエンドタイプ (default: local)
		// 	imagekit: ImageKitのアップロード時変換
		// 	local: サーバー内で変換し、ファイルストレージに保存
		Type string `mapstructure:"type" yaml:"type"`
	} `mapstructure:"media" yaml:"media"`

	// ImageKit ImageKit設定
	ImageKit struct {
		PrivateKey string `mapstructure:"privateKey" yaml:"privateKey"`
		UploadURL  string `mapstructure:"uploadUrl" yaml:"uploadUrl"`
		// Folder アップロード先フォルダ (default: pins)
		Folder string `mapstructure:"folder" yaml:"folder"`
		// Timeout アップロードのタイムアウト(秒)。0は無制限 (default: 0)
		Timeout int `mapstructure:"timeout" yaml:"timeout"`
		// Breaker サーキットブレーカー設定
		Breaker struct {
			// Enabled 有効かどうか (default: false)
			Enabled bool `mapstructure:"enabled" yaml:"enabled"`
			// Failures ブレーカーを開く連続失敗回数 (default: 5)
			Failures uint32 `mapstructure:"failures" yaml:"failures"`
		} `mapstructure:"breaker" yaml:"breaker"`
	} `mapstructure:"imagekit" yaml:"imagekit"`

	// Storage ファイルストレージ設定
	Storage struct {
		// Type ストレージタイプ (default: local)
		// 	local: ローカルストレージ
		// 	memory: メモリストレージ
		// 	s3: S3互換オブジェクトストレージ
		// 	swift: Swiftオブジェクトストレージ
		Type string `mapstructure:"type" yaml:"type"`

		// Local ローカルストレージ設定
		Local struct {
			// Dir 保存先ディレクトリ (default: ./storage)
			Dir string `mapstructure:"dir" yaml:"dir"`
		} `mapstructure:"local" yaml:"local"`

		// S3 S3ストレージ設定
		S3 struct {
			Bucket    string `mapstructure:"bucket" yaml:"bucket"`
			Region    string `mapstructure:"region" yaml:"region"`
			Endpoint  string `mapstructure:"endpoint" yaml:"endpoint"`
			AccessKey string `mapstructure:"accessKey" yaml:"accessKey"`
			SecretKey string `mapstructure:"secretKey" yaml:"secretKey"`
			// ForcePathStyle パス形式のURLを使うかどうか (default: false)
			ForcePathStyle bool `mapstructure:"forcePathStyle" yaml:"forcePathStyle"`
		} `mapstructure:"s3" yaml:"s3"`

		// Swift Swiftオブジェクトストレージ設定
		Swift struct {
			// UserName ユーザー名
			UserName string `mapstructure:"username" yaml:"username"`
			// APIKey APIキー(パスワード)
			APIKey string `mapstructure:"apiKey" yaml:"apiKey"`
			// TenantName テナント名
			TenantName string `mapstructure:"tenantName" yaml:"tenantName"`
			// TenantID テナントID
			TenantID string `mapstructure:"tenantId" yaml:"tenantId"`
			// Container コンテナ名
			Container string `mapstructure:"container" yaml:"container"`
			// AuthURL 認証エンドポイント
			AuthURL string `mapstructure:"authUrl" yaml:"authUrl"`
		} `mapstructure:"swift" yaml:"swift"`
	} `mapstructure:"storage" yaml:"storage"`

	// GCP Google Cloud Platform設定
	GCP struct {
		// ServiceAccount サービスアカウント設定
		ServiceAccount struct {
			// ProjectID Google Cloud Console プロジェクトID
			ProjectID string `mapstructure:"projectId" yaml:"projectId"`
			// File クレデンシャルファイル
			File string `mapstructure:"file" yaml:"file"`
		} `mapstructure:"serviceAccount" yaml:"serviceAccount"`

		// Profiler Cloud Profiler設定
		Profiler struct {
			// Enabled 有効かどうか (default: false)
			Enabled bool `mapstructure:"enabled" yaml:"enabled"`
		} `mapstructure:"profiler" yaml:"profiler"`
	} `mapstructure:"gcp" yaml:"gcp"`
}

// Configのデフォルト値設定
func init() {
	viper.SetDefault("dev", false)
	viper.SetDefault("pprof", false)
	viper.SetDefault("production", false)
	viper.SetDefault("origin", "http://localhost:5173")
	viper.SetDefault("port", 3000)
	viper.SetDefault("gzip", true)
	viper.SetDefault("shutdownTimeout", 10)
	viper.SetDefault("accessLog.enabled", true)
	viper.SetDefault("mariadb.host", "127.0.0.1")
	viper.SetDefault("mariadb.port", 3306)
	viper.SetDefault("mariadb.username", "root")
	viper.SetDefault("mariadb.password", "password")
	viper.SetDefault("mariadb.database", "pinboard")
	viper.SetDefault("mariadb.connection.maxOpen", 0)
	viper.SetDefault("mariadb.connection.maxIdle", 2)
	viper.SetDefault("mariadb.connection.lifetime", 0)
	viper.SetDefault("jwt.secret", "")
	viper.SetDefault("session.maxAge", int(session.DefaultMaxAge.Seconds()))
	viper.SetDefault("rateLimit.auth.rate", 0.2)
	viper.SetDefault("rateLimit.auth.burst", 10)
	viper.SetDefault("imaging.maxPixels", 4096*4096)
	viper.SetDefault("imaging.concurrency", 2)
	viper.SetDefault("upload.limitMB", 20)
	viper.SetDefault("media.type", "local")
	viper.SetDefault("imagekit.privateKey", "")
	viper.SetDefault("imagekit.uploadUrl", media.DefaultImageKitUploadURL)
	viper.SetDefault("imagekit.folder", "pins")
	viper.SetDefault("imagekit.timeout", 0)
	viper.SetDefault("imagekit.breaker.enabled", false)
	viper.SetDefault("imagekit.breaker.failures", 5)
	viper.SetDefault("storage.type", "local")
	viper.SetDefault("storage.local.dir", "./storage")
	viper.SetDefault("storage.s3.bucket", "")
	viper.SetDefault("storage.s3.region", "")
	viper.SetDefault("storage.s3.endpoint", "")
	viper.SetDefault("storage.s3.accessKey", "")
	viper.SetDefault("storage.s3.secretKey", "")
	viper.SetDefault("storage.s3.forcePathStyle", false)
	viper.SetDefault("storage.swift.username", "")
	viper.SetDefault("storage.swift.apiKey", "")
	viper.SetDefault("storage.swift.tenantName", "")
	viper.SetDefault("storage.swift.tenantId", "")
	viper.SetDefault("storage.swift.container", "")
	viper.SetDefault("storage.swift.authUrl", "")
	viper.SetDefault("gcp.serviceAccount.projectId", "")
	viper.SetDefault("gcp.serviceAccount.file", "")
	viper.SetDefault("gcp.profiler.enabled", false)
}

func (c Config) getFileStorage() (storage.FileStorage, error) {
	switch c.Storage.Type {
	case "s3":
		return storage.NewS3FileStorage(
			c.Storage.S3.Bucket,
			c.Storage.S3.Region,
			c.Storage.S3.Endpoint,
			c.Storage.S3.AccessKey,
			c.Storage.S3.SecretKey,
			c.Storage.S3.ForcePathStyle,
		)
	case "swift":
		return storage.NewSwiftFileStorage(
			context.Background(),
			c.Storage.Swift.Container,
			c.Storage.Swift.UserName,
			c.Storage.Swift.APIKey,
			c.Storage.Swift.TenantName,
			c.Storage.Swift.TenantID,
			c.Storage.Swift.AuthURL,
		)
	case "memory":
		return storage.NewInMemoryFileStorage(), nil
	default:
		return storage.NewLocalFileStorage(c.Storage.Local.Dir)
	}
}

func (c Config) getDatabaseDSN() string {
	conf := mysql.NewConfig()
	conf.User = c.MariaDB.Username
	conf.Passwd = c.MariaDB.Password
	conf.Net = "tcp"
	conf.Addr = fmt.Sprintf("%s:%d", c.MariaDB.Host, c.MariaDB.Port)
	conf.DBName = c.MariaDB.Database
	conf.Collation = "utf8mb4_general_ci"
	conf.ParseTime = true
	conf.Params = map[string]string{"charset": "utf8mb4"}
	return conf.FormatDSN()
}

func (c Config) getDatabase() (*gorm.DB, error) {
	engine, err := gorm.Open(gormMySQL.Open(c.getDatabaseDSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	db, err := engine.DB()
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(c.MariaDB.Connection.MaxOpen)
	db.SetMaxIdleConns(c.MariaDB.Connection.MaxIdle)
	db.SetConnMaxLifetime(time.Duration(c.MariaDB.Connection.LifeTime) * time.Second)
	return engine.Set("gorm:table_options", "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"), nil
}

func initProfiler(c *Config) error {
	return profiler.Start(profiler.Config{
		Service:        "pinboard",
		ServiceVersion: fmt.Sprintf("%s.%s", Version, Revision),
		ProjectID:      c.GCP.ServiceAccount.ProjectID,
	}, option.WithCredentialsFile(c.GCP.ServiceAccount.File))
}

// ensureJWTSecret JWT署名鍵を確認します。開発モードでは未設定の場合に一時鍵を生成します
func (c *Config) ensureJWTSecret(logger *zap.Logger) error {
	if len(c.JWT.Secret) > 0 {
		return nil
	}
	if !c.DevMode {
		return fmt.Errorf("jwt.secret is required")
	}
	c.JWT.Secret = random.SecureAlphaNumeric(64)
	logger.Warn("a temporary secret for session tokens was generated. Sessions are valid only during this running.")
	return nil
}

func provideRouterConfig(c *Config) *router.Config {
	return &router.Config{
		Development:   c.DevMode,
		Version:       Version,
		Revision:      Revision,
		AccessLogging: c.AccessLog.Enabled,
		Gzipped:       c.Gzip,
		AllowOrigins:  []string{c.Origin},
	}
}

func provideV1Config(c *Config) v1.Config {
	return v1.Config{
		MaxPixels:     c.Imaging.MaxPixels,
		UploadLimitMB: c.Upload.LimitMB,
		AuthRateLimit: rate.Limit(c.RateLimit.Auth.Rate),
		AuthRateBurst: c.RateLimit.Auth.Burst,
	}
}

func provideSessionConfig(c *Config) session.Config {
	return session.Config{
		Secret: []byte(c.JWT.Secret),
		MaxAge: time.Duration(c.Session.MaxAge) * time.Second,
		Secure: c.Production,
	}
}

func provideImageProcessorConfig(c *Config) imaging.Config {
	return imaging.Config{
		MaxPixels:   c.Imaging.MaxPixels,
		Concurrency: c.Imaging.Concurrency,
	}
}

func provideImageKitConfig(c *Config) media.ImageKitConfig {
	return media.ImageKitConfig{
		PrivateKey:      c.ImageKit.PrivateKey,
		UploadURL:       c.ImageKit.UploadURL,
		Folder:          c.ImageKit.Folder,
		Timeout:         time.Duration(c.ImageKit.Timeout) * time.Second,
		BreakerEnabled:  c.ImageKit.Breaker.Enabled,
		BreakerFailures: c.ImageKit.Breaker.Failures,
	}
}

func provideUploader(c *Config, processor imaging.Processor, fs storage.FileStorage, logger *zap.Logger) (media.Uploader, error) {
	switch c.Media.Type {
	case "imagekit":
		if len(c.ImageKit.PrivateKey) == 0 {
			return nil, fmt.Errorf("imagekit.privateKey is required when media.type is imagekit")
		}
		return media.NewImageKit(provideImageKitConfig(c), logger), nil
	case "local", "":
		return media.NewLocalRenderer(processor, fs, logger), nil
	default:
		return nil, fmt.Errorf("unknown media type: %s", c.Media.Type)
	}
}
