package i18n

// ZhCNMessages 简体中文消息目录
// ZhCNMessages Simplified Chinese message catalog
var ZhCNMessages = map[string]string{
	// 标签页
	"tab.upload":  "新会议",
	"tab.actions": "行动项",
	"tab.history": "历史",

	// 状态栏
	"status.ready":   "就绪",
	"status.loading": "加载中...",
	"status.api":     "接口",

	// 上传页
	"upload.heading":                  "新会议",
	"upload.subheading":               "粘贴会议记录或导入文本，后端会自动提取全部内容。",
	"upload.field.title":              "会议标题（可选）",
	"upload.field.type":               "会议类型",
	"upload.field.participants":       "参与者（逗号分隔）",
	"upload.field.transcript":         "会议记录 / 文本",
	"upload.placeholder.title":        "例如：Q2 迭代规划",
	"upload.placeholder.participants": "Alice, Bob, Carol",
	"upload.placeholder.transcript":   "在此粘贴会议记录...",
	"upload.tokens":                   "%d 字符 · 约 %d token",
	"upload.step.saving":              "正在保存会议...",
	"upload.step.processing":          "正在分析会议...",
	"upload.success":                  "会议分析完成！",
	"upload.demo":                     "演示模式：%s",
	"upload.sample_loaded":            "已载入示例记录",
	"upload.file_loaded":              "已载入 %s",
	"upload.cleared":                  "表单已清空",
	"upload.draft_restored":           "已恢复未提交的草稿",
	"upload.err.transcript_required":  "会议记录不能为空",
	"upload.err.file_too_large":       "文件过大（上限 %dKB）",
	"upload.err.file_read":            "无法读取文件：%s",
	"upload.file_prompt":              "文件路径：",
	"upload.analyze":                  "分析会议",

	// 行动项页
	"actions.heading":           "行动项",
	"actions.subheading":        "跟踪和管理从会议中提取的所有任务",
	"actions.stat.total":        "总数",
	"actions.stat.done":         "已完成",
	"actions.stat.high":         "高优先级",
	"actions.stat.overdue":      "已逾期",
	"actions.filter.owner":      "负责人",
	"actions.filter.priority":   "优先级",
	"actions.filter.status":     "状态",
	"actions.filter.all":        "全部",
	"actions.filter.all_owners": "全部负责人",
	"actions.field.due":         "截止日期",
	"actions.empty":             "暂无行动项",
	"actions.empty_hint":        "处理一次会议即可自动提取任务",
	"actions.updated":           "已更新",
	"actions.deleted":           "已删除",
	"actions.confirm_delete":    "确定删除这个行动项？",
	"actions.unassigned":        "未分配",
	"actions.overdue":           "已逾期",
	"actions.due":               "截止 %s",
	"actions.editing":           "编辑中",

	// 历史页
	"history.heading":      "会议历史",
	"history.subheading":   "浏览所有历史会议及其 AI 摘要",
	"history.search":       "搜索会议、摘要、记录...",
	"history.count":        "%d 场会议",
	"history.empty":        "还没有会议",
	"history.empty_hint":   "上传第一场会议开始使用",
	"history.pending":      "未处理",
	"history.action_count": "%d 个行动项",
	"history.summary":      "AI 摘要",
	"history.decisions":    "关键决定",
	"history.topics":       "议题",
	"history.action_items": "行动项",
	"history.no_actions":   "暂无行动项",
	"history.participants": "参与者",

	// 快捷键
	"keys.tab":     "tab/shift+tab 切换页面",
	"keys.quit":    "ctrl+c 退出",
	"keys.submit":  "ctrl+s 分析",
	"keys.sample":  "ctrl+e 示例",
	"keys.clear":   "ctrl+r 清空",
	"keys.file":    "ctrl+o 导入文件",
	"keys.toggle":  "空格 完成",
	"keys.edit":    "e 编辑",
	"keys.delete":  "d 删除",
	"keys.filter":  "o/p/s 筛选",
	"keys.reset":   "x 重置",
	"keys.expand":  "回车 展开",
	"keys.search":  "/ 搜索",
	"keys.confirm": "y 确认 · n 取消",
	"keys.save":    "回车 保存 · esc 取消",
	"keys.field":   "ctrl+n/ctrl+p 切换字段",
	"keys.move":    "↑/↓ 移动",
	"keys.cycle":   "←/→ 切换",

	// 纯文本模式
	"repl.welcome":        "MeetingMind · %s",
	"repl.help":           "命令：\n  /sample  /title <标题>  /type <类型>  /participants <a, b>  /file <路径>\n  /transcript（逐行输入，单独一行 '.' 结束）  /show  /submit  /clear\n  /actions [owner=..] [priority=..] [status=..]  /reset  /done <n>  /edit <n> 字段=值...  /delete <n>\n  /history [关键词]  /open <n>  /recent\n  /help  /quit",
	"repl.unknown":        "未知命令：%s（输入 /help 查看帮助）",
	"repl.usage":          "用法：%s",
	"repl.bad_index":      "没有第 %s 行",
	"repl.transcript_end": "请输入会议记录，单独一行 '.' 结束：",
	"repl.bye":            "再见",
	"repl.redirect":       "正在打开会议 %s 的历史记录",
	"repl.recent_empty":   "还没有提交记录",
	"repl.confirm_prompt": "%s [y/N] ",
	"repl.demo":           "演示",
	"repl.cancelled":      "已取消",

	// 通用
	"error.generic": "出错了",
}
