// Package feature 负责把目录服务与用户偏好编码到同一个特征空间。
//
// 向量由三段按固定顺序拼接：
//   - 手工段：价格分、english/hindi/regional 语言标记、远程标记
//   - 类别段：业务类型独热块 + 地点独热块
//   - 文本段：描述的 TF-IDF 向量（L2 归一化后乘以放大系数）
//
// Fit 在目录上离线拟合 Encoders 与 Matrix；在线只调用 EncodeUser。
package feature
