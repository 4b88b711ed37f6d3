package i18n

// ZhCNMessages 简体中文消息目录
// ZhCNMessages Simplified Chinese message catalog
var ZhCNMessages = map[string]string{
	// 视图
	"view.todos":     "待办",
	"view.dashboard": "概览",
	"view.analytics": "统计",
	"view.login":     "登录",
	"view.register":  "注册",

	// 待办字段
	"todo.title":       "标题",
	"todo.description": "描述",
	"todo.category":    "分类",
	"todo.priority":    "优先级",
	"todo.due":         "截止",
	"todo.time_spent":  "用时",
	"todo.completed":   "已完成",
	"todo.pending":     "未完成",
	"todo.overdue":     "已逾期",

	// 分类
	"category.work":     "工作",
	"category.personal": "个人",
	"category.shopping": "购物",
	"category.health":   "健康",
	"category.other":    "其他",

	// 优先级
	"priority.high":   "高",
	"priority.medium": "中",
	"priority.low":    "低",

	// 列表
	"list.empty":     "当前筛选条件下没有待办",
	"list.loading":   "加载中...",
	"list.page":      "第 %d / %d 页（共 %d 条）",
	"list.searching": "搜索：%s",

	// 筛选
	"filter.all":       "全部",
	"filter.active":    "进行中",
	"filter.completed": "已完成",
	"filter.clear":     "清除筛选",

	// 表单
	"form.new_todo":       "新建待办",
	"form.edit_todo":      "编辑待办",
	"form.submit":         "保存",
	"form.cancel":         "取消",
	"form.title_required": "标题不能为空",
	"form.title_too_long": "标题最长 %d 个字符",
	"form.bad_category":   "未知分类",
	"form.bad_priority":   "未知优先级",
	"form.bad_date":       "日期格式须为 YYYY-MM-DD",

	// 删除确认
	"confirm.delete":    "删除「%s」？此操作不可撤销。",
	"confirm.yes":       "删除",
	"confirm.no":        "保留",
	"confirm.cancelled": "已取消删除",

	// 计时
	"timer.running": "计时中 %s",
	"timer.started": "已开始计时",
	"timer.stopped": "计时结束：已记录 %s",
	"timer.busy":    "该待办已有计时器在运行",

	// 概览
	"dashboard.welcome":     "欢迎回来，%s",
	"dashboard.total":       "总数",
	"dashboard.completed":   "已完成",
	"dashboard.pending":     "未完成",
	"dashboard.rate":        "完成率",
	"dashboard.recent":      "最近待办",
	"dashboard.recent_none": "暂无最近记录",

	// 统计
	"analytics.by_category": "按分类",
	"analytics.by_priority": "按优先级",
	"analytics.trend":       "完成趋势",
	"analytics.month":       "本月：新建 %d，完成 %d",
	"analytics.time":        "总用时：%s",
	"analytics.empty":       "暂无统计数据",

	// 认证
	"auth.email":          "邮箱",
	"auth.password":       "密码",
	"auth.name":           "姓名",
	"auth.login":          "登录",
	"auth.register":       "创建账号",
	"auth.switch_login":   "已有账号？去登录",
	"auth.switch_signup":  "没有账号？去注册",
	"auth.logged_out":     "已退出登录",
	"auth.session_ended":  "会话已过期，请重新登录",
	"auth.email_required": "邮箱不能为空",
	"auth.name_required":  "姓名不能为空",
	"auth.bad_email":      "邮箱格式不正确",
	"auth.password_short": "密码至少 %d 个字符",

	// 错误
	"error.network":    "网络错误: %s",
	"error.validation": "输入无效: %s",
	"error.not_found":  "未找到: %s",
	"error.server":     "服务端错误: %s",

	// 状态栏
	"status.ready":   "就绪",
	"status.working": "处理中...",
	"status.offline": "请求失败，请检查网络",

	// 快捷键提示
	"keys.help":   "? 帮助",
	"keys.quit":   "q 退出",
	"keys.new":    "n 新建",
	"keys.toggle": "space 切换完成",
	"keys.delete": "d 删除",
	"keys.edit":   "e 编辑",
	"keys.timer":  "t 计时",
	"keys.views":  "tab 切换视图",
	"keys.search": "/ 搜索",
	"keys.pages":  "←/→ 翻页",
}
