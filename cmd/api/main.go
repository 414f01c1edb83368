package main

import (
	"context"
	"log"
	"os"
	"strings"

	"Aurora_Admin/internal/model"
	"Aurora_Admin/internal/pkg"
	"Aurora_Admin/internal/repository/mysql"
	rds "Aurora_Admin/internal/repository/redis"
	"Aurora_Admin/internal/router"
	"Aurora_Admin/internal/service"
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	dsn := env("MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/aurora_admin?charset=utf8mb4&parseTime=True")
	db, err := mysql.InitDB(dsn)
	if err != nil {
		panic(err)
	}

	// 连接redis
	rdb, err := rds.New(env("REDIS_ADDR", "127.0.0.1:6379"), os.Getenv("REDIS_PASSWORD"), 0)
	if err != nil {
		panic(err)
	}

	// 自动建表（开发阶段 OK）
	db.AutoMigrate(
		&model.Admin{},
		&model.User{},
		&model.Generation{},
		&model.ShowcaseItem{},
		&model.AuditLog{},
		&model.FeatureFlag{},
		&model.BlockedIP{},
		&model.BlockedDevice{},
		&model.Broadcast{},
	)

	auditRepo := &mysql.AuditRepository{DB: db}
	audit := service.NewAuditService(auditRepo)

	// 审计事件投递：配了 kafka 就发 kafka，否则打日志兜底
	sender := service.Sender(service.LogSender)
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		writer := pkg.NewAuditEventWriter(pkg.AuditKafkaConfig{
			Brokers: strings.Split(brokers, ","),
			Topic:   os.Getenv("KAFKA_AUDIT_TOPIC"),
		})
		defer writer.Close()
		sender = service.KafkaSender(writer)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go service.NewAuditRelayer(auditRepo, sender).Run(ctx)

	// 配置邮件环境
	emailCfg := pkg.SMTPConfig{
		Host:     env("SMTP_HOST", "smtp.example.com"),
		Port:     587,
		Username: env("SMTP_USER", "no-reply@example.com"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     env("SMTP_FROM", "Aurora <no-reply@example.com>"),
	}

	// Gin
	r := router.InitRouter(db, rdb, emailCfg, audit)
	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
