// Package middleware 웹 화면과 JSON API가 공유하는 Echo 미들웨어를 제공합니다.
//
//   - PanicRecovery: 핸들러 패닉을 복구하고 스택과 함께 기록
//   - HTTPLogger: 요청/응답 구조화 로그 (민감한 쿼리 파라미터 마스킹)
//   - RateLimiting: IP별 토큰 버킷 속도 제한
//   - ValidateContentType: JSON 엔드포인트의 Content-Type 검증
//   - Logger: Echo 내부 로그를 애플리케이션 로거로 연결하는 어댑터
package middleware
