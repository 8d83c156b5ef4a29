// Copyright 2024 nayalc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
	sts "github.com/tencentyun/qcloud-cos-sts-sdk/go"
)

var _ ginx.Handler = &Handler{}

// 临时密钥只放上传相关的动作，含分片上传
var uploadActions = []string{
	"name/cos:PostObject",
	"name/cos:PutObject",
	"name/cos:InitiateMultipartUpload",
	"name/cos:ListMultipartUploads",
	"name/cos:ListParts",
	"name/cos:UploadPart",
	"name/cos:CompleteMultipartUpload",
}

// Handler 给管理端签发上传商品图用的临时密钥，
// 前端拿到密钥后直传COS，服务端不经手图片字节
type Handler struct {
	client *sts.Client

	appID  string
	bucket string
	region string
}

func NewHandler(secretID, secretKey, appid, bucket, region string) *Handler {
	return &Handler{
		client: sts.NewClient(secretID, secretKey, http.DefaultClient),
		appID:  appid,
		bucket: bucket,
		region: region,
	}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	cos := server.Group("/cos")
	cos.POST("/authorization", ginx.B(h.TempAuthCode))
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
}

func (h *Handler) TempAuthCode(ctx *ginx.Context, req TmpAuthCodeReq) (ginx.Result, error) {
	res, err := h.client.GetCredential(&sts.CredentialOptions{
		DurationSeconds: int64(time.Hour.Seconds()),
		Region:          h.region,
		Policy: &sts.CredentialPolicy{
			Statement: []sts.CredentialPolicyStatement{
				h.uploadStatement(req),
			},
		},
	})
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: COSTmpAuthCode{
			SecretId:     res.Credentials.TmpSecretID,
			SecretKey:    res.Credentials.TmpSecretKey,
			SessionToken: res.Credentials.SessionToken,
			StartTime:    res.StartTime,
			ExpiredTime:  res.ExpiredTime,
		},
	}, nil
}

// uploadStatement 策略概述 https://cloud.tencent.com/document/product/436/18023
// Key限定为具体的对象路径，不放通配符。
// 存储桶的命名格式为 BucketName-APPID，此处的 bucket 必须为此格式
func (h *Handler) uploadStatement(req TmpAuthCodeReq) sts.CredentialPolicyStatement {
	resource := fmt.Sprintf("qcs::cos:%s:uid/%s:%s-%s/%s",
		h.region, h.appID,
		h.bucket, h.appID, req.Key)
	return sts.CredentialPolicyStatement{
		Action:   uploadActions,
		Effect:   "allow",
		Resource: []string{resource},
		Condition: map[string]map[string]interface{}{
			"string_equal": {
				"cos:content-type": req.Type,
			},
		},
	}
}
