package common

// Thông điệp chuẩn cho response thành công.
const MsgSuccess = "Thao tác thành công"
