package models // 模型包

import ( // 依赖导入
	"time" // 时间类型

	"github.com/google/uuid" // UUID 类型
)

type User struct { // 用户模型
	UserID       uuid.UUID  // 用户 ID
	Name         string     // 姓名
	Email        string     // 邮箱
	PasswordHash string     // 密码哈希
	Role         string     // 角色
	CreatedAt    time.Time  // 创建时间
	LastLoginAt  *time.Time // 最后登录时间
}

type Crop struct { // 作物模型
	CropID                uuid.UUID   // 作物 ID
	OwnerID               uuid.UUID   // 所属用户 ID
	Field                 string      // 田块名称
	CropType              string      // 作物类型
	PlantingDate          time.Time   // 种植日期
	Area                  float64     // 面积（英亩）
	SoilType              string      // 土壤类型
	WateringFrequencyDays int         // 浇水频率（天）
	GrowthStage           string      // 生长阶段
	HealthScore           int         // 健康评分
	EstimatedYield        float64     // 预估产量
	PestIssues            []PestIssue // 病虫害记录
	Activities            []Activity  // 农事活动记录
	HarvestDate           *time.Time  // 收获日期
	ActualYield           *float64    // 实际产量
	LastWateredAt         *time.Time  // 最近浇水时间
	Version               int64       // 乐观锁版本号
	CreatedAt             time.Time   // 创建时间
	UpdatedAt             time.Time   // 更新时间
}

type PestIssue struct { // 病虫害条目（JSONB 文档）
	Label        string    `json:"label"`         // 病虫害名称
	DateReported time.Time `json:"date_reported"` // 上报日期
	Severity     string    `json:"severity"`      // 严重程度
	Treatment    string    `json:"treatment"`     // 处理方案
	Status       string    `json:"status"`        // 状态 active/resolved
}

type Activity struct { // 农事活动条目（JSONB 文档）
	ActivityType string    `json:"activity_type"` // 活动类型
	Date         time.Time `json:"date"`          // 活动日期
	Notes        string    `json:"notes"`         // 备注
	Performer    string    `json:"performer"`     // 执行人
}

type Alert struct { // 告警模型
	AlertID     uuid.UUID  // 告警 ID
	CropID      *uuid.UUID // 关联作物 ID
	OwnerID     uuid.UUID  // 所属用户 ID
	Type        string     // 告警类型
	Title       string     // 标题
	Message     string     // 内容
	Severity    string     // 严重程度 low/medium/high
	IsRead      bool       // 是否已读
	ActionTaken *string    // 已采取的措施
	CreatedAt   time.Time  // 创建时间
	ResolvedAt  *time.Time // 处理时间
}

type Harvest struct { // 收获记录模型（不可变）
	HarvestID   uuid.UUID // 收获 ID
	CropID      uuid.UUID // 作物 ID
	OwnerID     uuid.UUID // 所属用户 ID
	HarvestDate time.Time // 收获日期
	ActualYield float64   // 实际产量
	Quality     string    // 品质 excellent/good/average/poor
	Notes       string    // 备注
	SoldAmount  float64   // 售出数量
	Income      float64   // 收入
	CreatedAt   time.Time // 创建时间
}

type Recommendation struct { // 种植建议模型
	RecommendationID uuid.UUID         // 建议 ID
	CropType         string            // 作物类型
	SoilType         string            // 土壤类型
	Details          RecommendationDoc // 建议内容（JSONB 文档）
	CreatedAt        time.Time         // 创建时间
}

type RecommendationDoc struct { // 建议内容文档
	BestSeason           []string `json:"bestSeason"`           // 最佳种植季节
	WateringSchedule     string   `json:"wateringSchedule"`     // 浇水安排
	Fertilizers          []string `json:"fertilizers"`          // 推荐肥料
	PestPrevention       []string `json:"pestPrevention"`       // 病虫害防治
	ExpectedYieldPerAcre string   `json:"expectedYieldPerAcre"` // 每英亩预期产量
	DaysToMaturity       int      `json:"daysToMaturity"`       // 成熟天数
	CommonDiseases       []string `json:"commonDiseases"`       // 常见病害
	SoilPreparation      string   `json:"soilPreparation"`      // 整地要求
	Spacing              string   `json:"spacing"`              // 株行距
}

type OutboxEvent struct { // 发件箱事件模型
	EventID       uuid.UUID  // 事件 ID
	AggregateType string     // 聚合类型
	AggregateID   uuid.UUID  // 聚合 ID
	Topic         string     // 目标主题
	Payload       []byte     // 负载数据
	Status        string     // 状态
	Attempts      int        // 重试次数
	NextRetryAt   *time.Time // 下次重试时间
	LockedAt      *time.Time // 锁定时间
	LockedBy      *string    // 锁定者
	LastError     *string    // 最近错误
	CreatedAt     time.Time  // 创建时间
	UpdatedAt     time.Time  // 更新时间
	PublishedAt   *time.Time // 发布时间
}

type CropEvent struct { // 作物事件流模型
	EventID    uuid.UUID // 事件 ID
	CropID     uuid.UUID // 作物 ID
	EventType  string    // 事件类型
	OccurredAt time.Time // 发生时间
	Payload    []byte    // 负载数据
}

type AuditLog struct { // 审计日志模型
	AuditID      uuid.UUID  // 审计 ID
	OccurredAt   time.Time  // 发生时间
	ActorUserID  *uuid.UUID // 操作用户 ID
	Subject      string     // 认证主体
	Action       string     // 动作
	ResourceType *string    // 资源类型
	ResourceID   *string    // 资源 ID
	RequestID    string     // 请求 ID
	Method       string     // HTTP 方法
	Path         string     // 请求路径
	StatusCode   int        // 状态码
	DurationMS   int64      // 耗时毫秒
	ClientIP     string     // 客户端 IP
	UserAgent    string     // UA 信息
	Details      []byte     // 详情数据
}
