package ioc

import (
	"github.com/gotomicro/ego/core/econf"
	"github.com/nayalc/beautyshop/internal/email"
	"github.com/nayalc/beautyshop/internal/email/aliyun"
	"github.com/nayalc/beautyshop/internal/notification"
)

func InitEmailService() email.Service {
	type Config struct {
		AccessKeyID     string `yaml:"accessKeyID"`
		AccessKeySecret string `yaml:"accessKeySecret"`
		AccountName     string `yaml:"accountName"`
	}
	var cfg Config
	err := econf.UnmarshalKey("email.aliyun", &cfg)
	if err != nil {
		panic(err)
	}
	svc, err := aliyun.NewAliyunDirectMailAPI(cfg.AccessKeyID, cfg.AccessKeySecret, cfg.AccountName)
	if err != nil {
		panic(err)
	}
	return svc
}

func InitNotificationConfig() notification.Config {
	var cfg notification.Config
	err := econf.UnmarshalKey("notification", &cfg)
	if err != nil {
		panic(err)
	}
	return cfg
}
