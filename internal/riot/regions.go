package riot

import "fmt"

// platformHosts routes summoner, league and spectator endpoints, keyed
// by platform region code.
var platformHosts = map[string]string{
	"br1":  "https://br1.api.riotgames.com",
	"eun1": "https://eun1.api.riotgames.com",
	"euw1": "https://euw1.api.riotgames.com",
	"jp1":  "https://jp1.api.riotgames.com",
	"kr":   "https://kr.api.riotgames.com",
	"la1":  "https://la1.api.riotgames.com",
	"la2":  "https://la2.api.riotgames.com",
	"na1":  "https://na1.api.riotgames.com",
	"oc1":  "https://oc1.api.riotgames.com",
	"tr1":  "https://tr1.api.riotgames.com",
	"ru":   "https://ru.api.riotgames.com",
	"ph2":  "https://ph2.api.riotgames.com",
	"sg2":  "https://sg2.api.riotgames.com",
	"th2":  "https://th2.api.riotgames.com",
	"tw2":  "https://tw2.api.riotgames.com",
	"vn2":  "https://vn2.api.riotgames.com",
}

// regionalHosts routes account and match endpoints, keyed by the same
// platform region codes.
var regionalHosts = map[string]string{
	"br1":  "https://americas.api.riotgames.com",
	"eun1": "https://europe.api.riotgames.com",
	"euw1": "https://europe.api.riotgames.com",
	"jp1":  "https://asia.api.riotgames.com",
	"kr":   "https://asia.api.riotgames.com",
	"la1":  "https://americas.api.riotgames.com",
	"la2":  "https://americas.api.riotgames.com",
	"na1":  "https://americas.api.riotgames.com",
	"oc1":  "https://sea.api.riotgames.com",
	"tr1":  "https://europe.api.riotgames.com",
	"ru":   "https://europe.api.riotgames.com",
	"ph2":  "https://sea.api.riotgames.com",
	"sg2":  "https://sea.api.riotgames.com",
	"th2":  "https://sea.api.riotgames.com",
	"tw2":  "https://sea.api.riotgames.com",
	"vn2":  "https://sea.api.riotgames.com",
}

func platformHost(region string) (string, error) {
	host, ok := platformHosts[region]
	if !ok {
		return "", fmt.Errorf("invalid region: %s", region)
	}
	return host, nil
}

func regionalHost(region string) (string, error) {
	host, ok := regionalHosts[region]
	if !ok {
		return "", fmt.Errorf("invalid region: %s", region)
	}
	return host, nil
}
