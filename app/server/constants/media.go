package constants

const (
	MediaProviderCloudinary = "cloudinary"
	MediaProviderS3         = "s3"
)

const (
	MediaDefaultFolder = "recipe-rise"
	MediaMaxAssetBytes = 2.5 * 1024 * 1024 // 2.5MB ，压缩后仍超过就拒绝
)

// 封面图
const (
	MediaCoverMaxWidth  = 1200
	MediaCoverMaxHeight = 1200
)

// 头像
const (
	MediaAvatarMaxWidth  = 400
	MediaAvatarMaxHeight = 400
)

// MediaMaxRequestBody 请求体上限，压缩前的原图也不能超过
const MediaMaxRequestBody = "10M"

const MediaJPEGQuality = 82 // 只在本地压缩（s3）时使用
