package server

import (
	"errors"

	"github.com/e1732a364fed/sharelink/utils"
	"github.com/samber/lo"
)

var ErrUnknownType = errors.New("unknown server type")

// Record 是 Server 的扁平序列化形式, 即 Netch:// 链接里 base64 的那段 json,
// 同时用于 toml/yaml 输出 和 api 的 json.
//
// json 字段名与 Netch 客户端导出的一致, 不要改.
type Record struct {
	Remark   string `json:"Remark" toml:"remark" yaml:"remark"`
	Type     Type   `json:"Type" toml:"type" yaml:"type"`
	Hostname string `json:"Hostname" toml:"hostname" yaml:"hostname"`
	Port     int    `json:"Port" toml:"port" yaml:"port"`

	Username string `json:"Username,omitempty" toml:"username" yaml:"username,omitempty"`
	Password string `json:"Password,omitempty" toml:"password" yaml:"password,omitempty"`

	UserID  string `json:"UserID,omitempty" toml:"user_id" yaml:"user_id,omitempty"`
	AlterID int    `json:"AlterID,omitempty" toml:"alter_id" yaml:"alter_id,omitempty"`

	EncryptMethod string `json:"EncryptMethod,omitempty" toml:"encrypt_method" yaml:"encrypt_method,omitempty"`

	Plugin       string `json:"Plugin,omitempty" toml:"plugin" yaml:"plugin,omitempty"`
	PluginOption string `json:"PluginOption,omitempty" toml:"plugin_option" yaml:"plugin_option,omitempty"`

	Protocol      string `json:"Protocol,omitempty" toml:"protocol" yaml:"protocol,omitempty"`
	ProtocolParam string `json:"ProtocolParam,omitempty" toml:"protocol_param" yaml:"protocol_param,omitempty"`
	OBFS          string `json:"OBFS,omitempty" toml:"obfs" yaml:"obfs,omitempty"`
	OBFSParam     string `json:"OBFSParam,omitempty" toml:"obfs_param" yaml:"obfs_param,omitempty"`

	TransferProtocol string `json:"TransferProtocol,omitempty" toml:"transfer_protocol" yaml:"transfer_protocol,omitempty"`
	FakeType         string `json:"FakeType,omitempty" toml:"fake_type" yaml:"fake_type,omitempty"`
	Host             string `json:"Host,omitempty" toml:"host" yaml:"host,omitempty"`
	Path             string `json:"Path,omitempty" toml:"path" yaml:"path,omitempty"`
	QUICSecure       string `json:"QUICSecure,omitempty" toml:"quic_secure" yaml:"quic_secure,omitempty"`
	QUICSecret       string `json:"QUICSecret,omitempty" toml:"quic_secret" yaml:"quic_secret,omitempty"`
	TLSSecure        bool   `json:"TLSSecure,omitempty" toml:"tls_secure" yaml:"tls_secure,omitempty"`
	UseMux           bool   `json:"UseMux,omitempty" toml:"use_mux" yaml:"use_mux,omitempty"`
}

// Record flattens s. A server without settings yields a Record with empty Type.
func (s Server) Record() Record {
	r := Record{
		Remark:   s.Remark,
		Type:     s.Type(),
		Hostname: s.Hostname,
		Port:     s.Port,
	}

	switch st := s.Settings.(type) {
	case Socks5:
		r.Username = st.Username
		r.Password = st.Password
	case Shadowsocks:
		r.EncryptMethod = st.EncryptMethod
		r.Password = st.Password
		r.Plugin = st.Plugin
		r.PluginOption = st.PluginOption
	case ShadowsocksR:
		r.EncryptMethod = st.EncryptMethod
		r.Password = st.Password
		r.Protocol = st.Protocol
		r.ProtocolParam = st.ProtocolParam
		r.OBFS = st.OBFS
		r.OBFSParam = st.OBFSParam
	case VMess:
		r.UserID = st.UserID
		r.AlterID = st.AlterID
		r.EncryptMethod = st.EncryptMethod
		r.TransferProtocol = st.TransferProtocol
		r.FakeType = st.FakeType
		r.TLSSecure = st.TLSSecure
		r.UseMux = st.UseMux
		switch tr := st.Transport.(type) {
		case VMessStream:
			r.Host = tr.Host
			r.Path = tr.Path
		case VMessQUIC:
			r.QUICSecure = tr.Security
			r.QUICSecret = tr.Key
		}
	}
	return r
}

// FromRecord 根据 Type 重建 Server; 它只检查结构, 不检查各字段是否被支持.
func FromRecord(r Record) (Server, error) {
	s := Server{
		Remark:   r.Remark,
		Hostname: r.Hostname,
		Port:     r.Port,
	}

	switch r.Type {
	case TypeSocks5:
		s.Settings = Socks5{
			Username: r.Username,
			Password: r.Password,
		}
	case TypeSS:
		s.Settings = Shadowsocks{
			EncryptMethod: r.EncryptMethod,
			Password:      r.Password,
			Plugin:        r.Plugin,
			PluginOption:  r.PluginOption,
		}
	case TypeSSR:
		s.Settings = ShadowsocksR{
			EncryptMethod: r.EncryptMethod,
			Password:      r.Password,
			Protocol:      r.Protocol,
			ProtocolParam: r.ProtocolParam,
			OBFS:          r.OBFS,
			OBFSParam:     r.OBFSParam,
		}
	case TypeVMess:
		v := VMess{
			UserID:           r.UserID,
			AlterID:          r.AlterID,
			EncryptMethod:    r.EncryptMethod,
			TransferProtocol: r.TransferProtocol,
			FakeType:         r.FakeType,
			TLSSecure:        r.TLSSecure,
			UseMux:           r.UseMux,
		}
		if r.TransferProtocol == "quic" {
			v.Transport = VMessQUIC{Security: r.QUICSecure, Key: r.QUICSecret}
		} else {
			v.Transport = VMessStream{Host: r.Host, Path: r.Path}
		}
		s.Settings = v
	default:
		return Server{}, utils.ErrInErr{ErrDesc: "FromRecord failed", ErrDetail: ErrUnknownType, Data: r.Type}
	}
	return s, nil
}

// Records flattens every server in list.
func Records(list []Server) []Record {
	return lo.Map(list, func(s Server, _ int) Record {
		return s.Record()
	})
}
